package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para StockLocation (DIP).
type LocationRepository interface {
	Create(location *entity.StockLocation) error
	GetByID(id string) (*entity.StockLocation, error)
	Update(location *entity.StockLocation) error
	// List devuelve todas las ubicaciones; el motor de jerarquía arma el
	// árbol en memoria a partir del listado plano.
	List() ([]*entity.StockLocation, error)
	ListByParent(parentID string) ([]*entity.StockLocation, error)
	// ReparentChildren mueve todos los hijos directos de un nodo a otro padre
	// (usado al eliminar: los hijos se promueven un nivel).
	ReparentChildren(ofID, newParentID string) error
	Delete(id string) error
}
