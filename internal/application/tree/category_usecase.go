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

// CategoryUseCase administra el árbol de categorías de piezas. Mismas reglas
// estructurales que las ubicaciones; el contenido directo son piezas en vez
// de items de stock.
type CategoryUseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	partRepo     repository.PartRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	txRunner TxRunner,
	categoryRepo repository.CategoryRepository,
	partRepo repository.PartRepository,
) *CategoryUseCase {
	return &CategoryUseCase{
		txRunner:     txRunner,
		categoryRepo: categoryRepo,
		partRepo:     partRepo,
	}
}

// CategoryInfo categoría con sus datos derivados del árbol.
type CategoryInfo struct {
	Category  *entity.PartCategory
	Path      string
	PartCount int
}

// Create da de alta una categoría bajo el padre indicado (vacío = raíz).
func (uc *CategoryUseCase) Create(ctx context.Context, input NodeInput) (*entity.PartCategory, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	cat := &entity.PartCategory{
		ID:          uuid.New().String(),
		ParentID:    input.ParentID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Update renombra o re-describe una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id, name, description string) (*entity.PartCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	cat.Name = strings.TrimSpace(name)
	cat.Description = description
	cat.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Reparent mueve la categoría bajo otro padre, rechazando ciclos con
// ErrHierarchyCycle antes de persistir.
func (uc *CategoryUseCase) Reparent(ctx context.Context, id, newParentID string) (*entity.PartCategory, error) {
	all, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)

	cat, ok := t.Get(id)
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

	cat.ParentID = newParentID
	cat.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete elimina una categoría promoviendo hijos y piezas al padre, en una
// sola transacción.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunTree(ctx, func(
		_ repository.LocationRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.StockItemRepository,
		partRepo repository.PartRepository,
	) error {
		if err := categoryRepo.ReparentChildren(id, cat.ParentID); err != nil {
			return err
		}
		if err := partRepo.RelocateByCategory(id, cat.ParentID); err != nil {
			return err
		}
		return categoryRepo.Delete(id)
	})
}

// Detail devuelve la categoría con su ruta y el conteo de piezas del subárbol.
func (uc *CategoryUseCase) Detail(ctx context.Context, id string) (*CategoryInfo, error) {
	all, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)
	cat, ok := t.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	counts, err := uc.partRepo.CountByCategory()
	if err != nil {
		return nil, err
	}
	return &CategoryInfo{
		Category:  cat,
		Path:      t.PathString(id),
		PartCount: t.ItemCount(id, counts),
	}, nil
}

// List devuelve todas las categorías con ruta y conteos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*CategoryInfo, error) {
	all, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	counts, err := uc.partRepo.CountByCategory()
	if err != nil {
		return nil, err
	}
	t := hierarchy.New(all)
	out := make([]*CategoryInfo, 0, len(all))
	for _, cat := range all {
		out = append(out, &CategoryInfo{
			Category:  cat,
			Path:      t.PathString(cat.ID),
			PartCount: t.ItemCount(cat.ID, counts),
		})
	}
	return out, nil
}

// Children devuelve los hijos directos de un nodo (vacío = raíces).
func (uc *CategoryUseCase) Children(ctx context.Context, parentID string) ([]*entity.PartCategory, error) {
	return uc.categoryRepo.ListByParent(parentID)
}

// Barcode arma el payload escaneable de una categoría.
func (uc *CategoryUseCase) Barcode(ctx context.Context, id string) (string, error) {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if cat == nil {
		return "", domain.ErrNotFound
	}
	return barcode.Build("partcategory", cat.ID, "/api/categories/"+cat.ID, map[string]string{
		"name": cat.Name,
	})
}
