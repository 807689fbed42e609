package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/tree"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and tree.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ tree.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de stock atados a la
// tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	trackRepo repository.StockTrackingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewStockItemRepository(tx)
	trackRepo := NewStockTrackingRepository(tx)

	if err := fn(itemRepo, trackRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTree inicia una transacción con los repos de árbol y catálogo (para la
// eliminación de nodos, que promueve hijos y reasigna contenido).
func (r *TxRunner) RunTree(ctx context.Context, fn func(
	locationRepo repository.LocationRepository,
	categoryRepo repository.CategoryRepository,
	itemRepo repository.StockItemRepository,
	partRepo repository.PartRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locationRepo := NewLocationRepository(tx)
	categoryRepo := NewCategoryRepository(tx)
	itemRepo := NewStockItemRepository(tx)
	partRepo := NewPartRepository(tx)

	if err := fn(locationRepo, categoryRepo, itemRepo, partRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
