package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para Part (DIP).
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	Update(part *entity.Part) error
	ListByCategory(categoryID string) ([]*entity.Part, error)
	// RelocateByCategory reasigna todas las piezas de una categoría a otra
	// (usado al eliminar una categoría: las piezas suben al padre).
	RelocateByCategory(fromCategoryID, toCategoryID string) error
	// CountByCategory devuelve la cantidad de piezas directas por categoría.
	CountByCategory() (map[string]int, error)
}
