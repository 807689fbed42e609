package stock

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada operación del motor de
// stock sea atómica: decremento del origen, creación de nuevos items y
// entradas de historial persisten juntos o no persisten.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error) error
}
