package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para PartCategory (DIP).
type CategoryRepository interface {
	Create(category *entity.PartCategory) error
	GetByID(id string) (*entity.PartCategory, error)
	Update(category *entity.PartCategory) error
	List() ([]*entity.PartCategory, error)
	ListByParent(parentID string) ([]*entity.PartCategory, error)
	ReparentChildren(ofID, newParentID string) error
	Delete(id string) error
}
