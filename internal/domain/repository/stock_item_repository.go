package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem (DIP).
// La mutación de cantidad/ubicación pasa por el motor de stock: estos métodos
// se invocan desde sus transacciones, nunca directo desde handlers.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate obtiene el item bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	Delete(id string) error
	ListByLocation(locationID string) ([]*entity.StockItem, error)
	ListByPart(partID string) ([]*entity.StockItem, error)
	// RelocateByLocation reasigna todos los items de una ubicación a otra
	// (usado al eliminar una ubicación: el stock sube al padre).
	RelocateByLocation(fromLocationID, toLocationID string) error
	// UsedSerials devuelve qué seriales del listado ya están en uso para la pieza.
	UsedSerials(partID string, serials []int64) ([]int64, error)
	// TotalStockByPart suma la cantidad en stock de una pieza en todas las ubicaciones.
	TotalStockByPart(partID string) (decimal.Decimal, error)
	// CountByLocation devuelve la cantidad de items directos por ubicación.
	CountByLocation() (map[string]int, error)
}
