package part

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// PartUseCase mantiene el registro mínimo de piezas que el motor de stock
// necesita para validar referencias y la bandera de serialización. Precios,
// BOM y proveedores quedan fuera de este servicio.
type PartUseCase struct {
	partRepo     repository.PartRepository
	categoryRepo repository.CategoryRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(partRepo repository.PartRepository, categoryRepo repository.CategoryRepository) *PartUseCase {
	return &PartUseCase{partRepo: partRepo, categoryRepo: categoryRepo}
}

// CreateInput datos para registrar una pieza.
type CreateInput struct {
	Name        string
	Description string
	CategoryID  string
	Units       string
	Trackable   bool
}

// Create registra una pieza, validando la categoría si viene asignada.
func (uc *PartUseCase) Create(ctx context.Context, input CreateInput) (*entity.Part, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	p := &entity.Part{
		ID:          uuid.New().String(),
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Units:       input.Units,
		Trackable:   input.Trackable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.partRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get devuelve una pieza por id.
func (uc *PartUseCase) Get(ctx context.Context, id string) (*entity.Part, error) {
	p, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListByCategory devuelve las piezas directas de una categoría.
func (uc *PartUseCase) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Part, error) {
	return uc.partRepo.ListByCategory(categoryID)
}
