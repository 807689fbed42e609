package tree_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Fakes en memoria para los puertos del árbol. Copian al entrar y salir para
// que las mutaciones sólo cuenten a través de Update, igual que contra la BD.

type memLocationRepo struct {
	locs  map[string]*entity.StockLocation
	order []string
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locs: make(map[string]*entity.StockLocation)}
}

func (r *memLocationRepo) Create(loc *entity.StockLocation) error {
	c := *loc
	r.locs[c.ID] = &c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	loc, ok := r.locs[id]
	if !ok {
		return nil, nil
	}
	c := *loc
	return &c, nil
}

func (r *memLocationRepo) Update(loc *entity.StockLocation) error {
	c := *loc
	r.locs[c.ID] = &c
	return nil
}

func (r *memLocationRepo) List() ([]*entity.StockLocation, error) {
	out := make([]*entity.StockLocation, 0, len(r.order))
	for _, id := range r.order {
		if loc, ok := r.locs[id]; ok {
			c := *loc
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLocationRepo) ListByParent(parentID string) ([]*entity.StockLocation, error) {
	var out []*entity.StockLocation
	for _, id := range r.order {
		if loc, ok := r.locs[id]; ok && loc.ParentID == parentID {
			c := *loc
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLocationRepo) ReparentChildren(ofID, newParentID string) error {
	for _, loc := range r.locs {
		if loc.ParentID == ofID {
			loc.ParentID = newParentID
		}
	}
	return nil
}

func (r *memLocationRepo) Delete(id string) error {
	delete(r.locs, id)
	return nil
}

type memCategoryRepo struct {
	cats  map[string]*entity.PartCategory
	order []string
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{cats: make(map[string]*entity.PartCategory)}
}

func (r *memCategoryRepo) Create(cat *entity.PartCategory) error {
	c := *cat
	r.cats[c.ID] = &c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.PartCategory, error) {
	cat, ok := r.cats[id]
	if !ok {
		return nil, nil
	}
	c := *cat
	return &c, nil
}

func (r *memCategoryRepo) Update(cat *entity.PartCategory) error {
	c := *cat
	r.cats[c.ID] = &c
	return nil
}

func (r *memCategoryRepo) List() ([]*entity.PartCategory, error) {
	out := make([]*entity.PartCategory, 0, len(r.order))
	for _, id := range r.order {
		if cat, ok := r.cats[id]; ok {
			c := *cat
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ListByParent(parentID string) ([]*entity.PartCategory, error) {
	var out []*entity.PartCategory
	for _, id := range r.order {
		if cat, ok := r.cats[id]; ok && cat.ParentID == parentID {
			c := *cat
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ReparentChildren(ofID, newParentID string) error {
	for _, cat := range r.cats {
		if cat.ParentID == ofID {
			cat.ParentID = newParentID
		}
	}
	return nil
}

func (r *memCategoryRepo) Delete(id string) error {
	delete(r.cats, id)
	return nil
}

type memPartRepo struct {
	parts map[string]*entity.Part
}

func newMemPartRepo() *memPartRepo {
	return &memPartRepo{parts: make(map[string]*entity.Part)}
}

func (r *memPartRepo) Create(part *entity.Part) error {
	c := *part
	r.parts[c.ID] = &c
	return nil
}

func (r *memPartRepo) GetByID(id string) (*entity.Part, error) {
	part, ok := r.parts[id]
	if !ok {
		return nil, nil
	}
	c := *part
	return &c, nil
}

func (r *memPartRepo) Update(part *entity.Part) error {
	c := *part
	r.parts[c.ID] = &c
	return nil
}

func (r *memPartRepo) ListByCategory(categoryID string) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, part := range r.parts {
		if part.CategoryID == categoryID {
			c := *part
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memPartRepo) RelocateByCategory(fromCategoryID, toCategoryID string) error {
	for _, part := range r.parts {
		if part.CategoryID == fromCategoryID {
			part.CategoryID = toCategoryID
		}
	}
	return nil
}

func (r *memPartRepo) CountByCategory() (map[string]int, error) {
	counts := make(map[string]int)
	for _, part := range r.parts {
		if part.CategoryID != "" {
			counts[part.CategoryID]++
		}
	}
	return counts, nil
}

type memItemRepo struct {
	items map[string]*entity.StockItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.StockItem)}
}

func (r *memItemRepo) Create(item *entity.StockItem) error {
	c := *item
	r.items[c.ID] = &c
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.StockItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.StockItem) error {
	c := *item
	r.items[c.ID] = &c
	return nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) ListByLocation(locationID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range r.items {
		if item.LocationID == locationID {
			c := *item
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListByPart(partID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range r.items {
		if item.PartID == partID {
			c := *item
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memItemRepo) RelocateByLocation(fromLocationID, toLocationID string) error {
	for _, item := range r.items {
		if item.LocationID == fromLocationID {
			item.LocationID = toLocationID
		}
	}
	return nil
}

func (r *memItemRepo) UsedSerials(partID string, serials []int64) ([]int64, error) {
	inUse := make(map[int64]bool)
	for _, item := range r.items {
		if item.PartID == partID && item.SerialNumber != nil {
			inUse[*item.SerialNumber] = true
		}
	}
	var out []int64
	for _, s := range serials {
		if inUse[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memItemRepo) TotalStockByPart(partID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range r.items {
		if item.PartID == partID {
			total = total.Add(item.Quantity)
		}
	}
	return total, nil
}

func (r *memItemRepo) CountByLocation() (map[string]int, error) {
	counts := make(map[string]int)
	for _, item := range r.items {
		if item.LocationID != "" {
			counts[item.LocationID]++
		}
	}
	return counts, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	locRepo  *memLocationRepo
	catRepo  *memCategoryRepo
	itemRepo *memItemRepo
	partRepo *memPartRepo
}

func (f *fakeTxRunner) RunTree(ctx context.Context, fn func(
	locationRepo repository.LocationRepository,
	categoryRepo repository.CategoryRepository,
	itemRepo repository.StockItemRepository,
	partRepo repository.PartRepository,
) error) error {
	return fn(f.locRepo, f.catRepo, f.itemRepo, f.partRepo)
}
