package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockTrackingRepository define el puerto de persistencia del historial de
// stock (DIP). Append-only por contrato: no existen Update ni Delete; las
// entradas se conservan aunque el item dueño sea eliminado.
type StockTrackingRepository interface {
	Create(entry *entity.StockItemTracking) error
	// ListByItem devuelve las entradas de un item, más recientes primero.
	ListByItem(itemID string, limit, offset int) ([]*entity.StockItemTracking, error)
	// LatestByItem devuelve la entrada más reciente de un item.
	LatestByItem(itemID string) (*entity.StockItemTracking, error)
	// CountByItem devuelve la cantidad de entradas de un item.
	CountByItem(itemID string) (int, error)
}
