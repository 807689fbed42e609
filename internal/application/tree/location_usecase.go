package tree

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/barcode"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LocationUseCase administra el árbol de ubicaciones: altas, renombres,
// reparenting con prevención de ciclos y eliminación con promoción de hijos.
type LocationUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	itemRepo     repository.StockItemRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	itemRepo repository.StockItemRepository,
) *LocationUseCase {
	return &LocationUseCase{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		itemRepo:     itemRepo,
	}
}

// NodeInput datos para crear o actualizar un nodo.
type NodeInput struct {
	Name        string
	Description string
	ParentID    string
}

// LocationInfo ubicación con sus datos derivados del árbol.
type LocationInfo struct {
	Location  *entity.StockLocation
	Path      string
	ItemCount int
}

// Create da de alta una ubicación bajo el padre indicado (vacío = raíz).
func (uc *LocationUseCase) Create(ctx context.Context, input NodeInput) (*entity.StockLocation, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ParentID != "" {
		parent, err := uc.locationRepo.GetByID(input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	loc := &entity.StockLocation{
		ID:          uuid.New().String(),
		ParentID:    input.ParentID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Update renombra o re-describe una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id, name, description string) (*entity.StockLocation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	loc.Name = strings.TrimSpace(name)
	loc.Description = description
	loc.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Reparent mueve la ubicación bajo otro padre (vacío = raíz). Si el nuevo
// padre es el propio nodo o un descendiente, rechaza con ErrHierarchyCycle
// antes de tocar la persistencia: un ciclo es una violación estructural, no
// un no-op silencioso.
func (uc *LocationUseCase) Reparent(ctx context.Context, id, newParentID string) (*entity.StockLocation, error) {
	all, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)

	loc, ok := t.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if newParentID != "" {
		if _, ok := t.Get(newParentID); !ok {
			return nil, domain.ErrNotFound
		}
	}
	if t.WouldCycle(id, newParentID) {
		return nil, domain.ErrHierarchyCycle
	}

	loc.ParentID = newParentID
	loc.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete elimina una ubicación promoviendo su contenido un nivel: los hijos
// directos pasan al padre del nodo eliminado y los items de stock que
// cuelgan directamente se reasignan allí también. Todo o nada: corre en una
// sola transacción. Ningún item de stock se pierde.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunTree(ctx, func(
		locationRepo repository.LocationRepository,
		_ repository.CategoryRepository,
		itemRepo repository.StockItemRepository,
		_ repository.PartRepository,
	) error {
		if err := locationRepo.ReparentChildren(id, loc.ParentID); err != nil {
			return err
		}
		if err := itemRepo.RelocateByLocation(id, loc.ParentID); err != nil {
			return err
		}
		return locationRepo.Delete(id)
	})
}

// Detail devuelve la ubicación con su ruta y el conteo agregado de items del
// subárbol.
func (uc *LocationUseCase) Detail(ctx context.Context, id string) (*LocationInfo, error) {
	all, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)
	loc, ok := t.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	counts, err := uc.itemRepo.CountByLocation()
	if err != nil {
		return nil, err
	}
	return &LocationInfo{
		Location:  loc,
		Path:      t.PathString(id),
		ItemCount: t.ItemCount(id, counts),
	}, nil
}

// List devuelve todas las ubicaciones con ruta y conteos, en orden de carga.
func (uc *LocationUseCase) List(ctx context.Context) ([]*LocationInfo, error) {
	all, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	counts, err := uc.itemRepo.CountByLocation()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)
	out := make([]*LocationInfo, 0, len(all))
	for _, loc := range all {
		out = append(out, &LocationInfo{
			Location:  loc,
			Path:      t.PathString(loc.ID),
			ItemCount: t.ItemCount(loc.ID, counts),
		})
	}
	return out, nil
}

// Children devuelve los hijos directos de un nodo (vacío = raíces).
func (uc *LocationUseCase) Children(ctx context.Context, parentID string) ([]*entity.StockLocation, error) {
	return uc.locationRepo.ListByParent(parentID)
}

// Barcode arma el payload escaneable de una ubicación.
func (uc *LocationUseCase) Barcode(ctx context.Context, id string) (string, error) {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return "", domain.ErrNotFound
	}
	return barcode.Build("stocklocation", loc.ID, "/api/locations/"+loc.ID, map[string]string{
		"name": loc.Name,
	})
}
