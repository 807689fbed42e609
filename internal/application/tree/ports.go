package tree

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del árbol atados a esa tx. La eliminación de un nodo muta
// varios registros (promoción de hijos, reasignación de items) y debe ser
// atómica.
type TxRunner interface {
	RunTree(ctx context.Context, fn func(
		locationRepo repository.LocationRepository,
		categoryRepo repository.CategoryRepository,
		itemRepo repository.StockItemRepository,
		partRepo repository.PartRepository,
	) error) error
}
