package stock_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia. Copian las entidades al
// entrar y al salir para que las mutaciones sólo cuenten si pasan por Update,
// igual que con una base real.
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct {
	items map[string]*entity.StockItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.StockItem)}
}

func copyItem(it *entity.StockItem) *entity.StockItem {
	c := *it
	if it.SerialNumber != nil {
		sn := *it.SerialNumber
		c.SerialNumber = &sn
	}
	return &c
}

func (r *memItemRepo) Create(item *entity.StockItem) error {
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(it), nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.StockItem) error {
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) list(match func(*entity.StockItem) bool) []*entity.StockItem {
	var out []*entity.StockItem
	for _, it := range r.items {
		if match(it) {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memItemRepo) ListByLocation(locationID string) ([]*entity.StockItem, error) {
	return r.list(func(it *entity.StockItem) bool { return it.LocationID == locationID }), nil
}

func (r *memItemRepo) ListByPart(partID string) ([]*entity.StockItem, error) {
	return r.list(func(it *entity.StockItem) bool { return it.PartID == partID }), nil
}

func (r *memItemRepo) RelocateByLocation(fromLocationID, toLocationID string) error {
	for _, it := range r.items {
		if it.LocationID == fromLocationID {
			it.LocationID = toLocationID
		}
	}
	return nil
}

func (r *memItemRepo) UsedSerials(partID string, serials []int64) ([]int64, error) {
	want := make(map[int64]bool, len(serials))
	for _, s := range serials {
		want[s] = true
	}
	var used []int64
	for _, it := range r.items {
		if it.PartID == partID && it.SerialNumber != nil && want[*it.SerialNumber] {
			used = append(used, *it.SerialNumber)
		}
	}
	sort.Slice(used, func(i, j int) bool { return used[i] < used[j] })
	return used, nil
}

func (r *memItemRepo) TotalStockByPart(partID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.items {
		if it.PartID == partID {
			total = total.Add(it.Quantity)
		}
	}
	return total, nil
}

func (r *memItemRepo) CountByLocation() (map[string]int, error) {
	counts := make(map[string]int)
	for _, it := range r.items {
		if it.LocationID != "" {
			counts[it.LocationID]++
		}
	}
	return counts, nil
}

type memTrackRepo struct {
	entries []*entity.StockItemTracking
}

func newMemTrackRepo() *memTrackRepo { return &memTrackRepo{} }

func (r *memTrackRepo) Create(entry *entity.StockItemTracking) error {
	c := *entry
	r.entries = append(r.entries, &c)
	return nil
}

func (r *memTrackRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockItemTracking, error) {
	var out []*entity.StockItemTracking
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ItemID == itemID {
			c := *r.entries[i]
			out = append(out, &c)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memTrackRepo) LatestByItem(itemID string) (*entity.StockItemTracking, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ItemID == itemID {
			c := *r.entries[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memTrackRepo) CountByItem(itemID string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *memTrackRepo) total() int { return len(r.entries) }

type memPartRepo struct {
	parts map[string]*entity.Part
}

func newMemPartRepo() *memPartRepo { return &memPartRepo{parts: make(map[string]*entity.Part)} }

func (r *memPartRepo) Create(p *entity.Part) error {
	c := *p
	r.parts[p.ID] = &c
	return nil
}

func (r *memPartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memPartRepo) Update(p *entity.Part) error {
	c := *p
	r.parts[p.ID] = &c
	return nil
}

func (r *memPartRepo) ListByCategory(categoryID string) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.parts {
		if p.CategoryID == categoryID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memPartRepo) RelocateByCategory(fromCategoryID, toCategoryID string) error {
	for _, p := range r.parts {
		if p.CategoryID == fromCategoryID {
			p.CategoryID = toCategoryID
		}
	}
	return nil
}

func (r *memPartRepo) CountByCategory() (map[string]int, error) {
	counts := make(map[string]int)
	for _, p := range r.parts {
		if p.CategoryID != "" {
			counts[p.CategoryID]++
		}
	}
	return counts, nil
}

type memLocationRepo struct {
	locations map[string]*entity.StockLocation
	order     []string
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: make(map[string]*entity.StockLocation)}
}

func (r *memLocationRepo) Create(l *entity.StockLocation) error {
	c := *l
	r.locations[l.ID] = &c
	r.order = append(r.order, l.ID)
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *memLocationRepo) Update(l *entity.StockLocation) error {
	c := *l
	r.locations[l.ID] = &c
	return nil
}

func (r *memLocationRepo) List() ([]*entity.StockLocation, error) {
	out := make([]*entity.StockLocation, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.locations[id]; ok {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLocationRepo) ListByParent(parentID string) ([]*entity.StockLocation, error) {
	var out []*entity.StockLocation
	for _, id := range r.order {
		if l, ok := r.locations[id]; ok && l.ParentID == parentID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLocationRepo) ReparentChildren(ofID, newParentID string) error {
	for _, l := range r.locations {
		if l.ParentID == ofID {
			l.ParentID = newParentID
		}
	}
	return nil
}

func (r *memLocationRepo) Delete(id string) error {
	delete(r.locations, id)
	return nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes, sin
// transacción real: los tests unitarios cubren la lógica, no el rollback.
type fakeTxRunner struct {
	itemRepo  *memItemRepo
	trackRepo *memTrackRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	trackRepo repository.StockTrackingRepository,
) error) error {
	return fn(r.itemRepo, r.trackRepo)
}

// raceTxRunner inserta un item rival justo antes de ejecutar el callback,
// simulando otra transacción que comitea entre la validación y el bloqueo
// de fila.
type raceTxRunner struct {
	inner *fakeTxRunner
	rival *entity.StockItem
}

func (r *raceTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	trackRepo repository.StockTrackingRepository,
) error) error {
	if r.rival != nil {
		if err := r.inner.itemRepo.Create(r.rival); err != nil {
			return err
		}
		r.rival = nil
	}
	return r.inner.Run(ctx, fn)
}
