package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, part_id, location_id, quantity, serial_number, batch, notes, delete_on_deplete, created_at, updated_at`

// Create persiste un item de stock. location_id vacío se guarda como NULL.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	locationID := (*string)(nil)
	if item.LocationID != "" {
		locationID = &item.LocationID
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PartID, locationID, item.Quantity, item.SerialNumber,
		item.Batch, item.Notes, item.DeleteOnDeplete, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID. Devuelve nil, nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock item")
}

// GetForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock item for update")
}

// Update actualiza cantidad, ubicación y metadatos del item.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET location_id = $2, quantity = $3, serial_number = $4, batch = $5,
		    notes = $6, delete_on_deplete = $7, updated_at = $8
		WHERE id = $1`
	locationID := (*string)(nil)
	if item.LocationID != "" {
		locationID = &item.LocationID
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, locationID, item.Quantity, item.SerialNumber,
		item.Batch, item.Notes, item.DeleteOnDeplete, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// Delete elimina el item. Su historial no se toca: las entradas de
// trazabilidad sobreviven al item.
func (r *StockItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// ListByLocation lista los items directos de una ubicación.
func (r *StockItemRepo) ListByLocation(locationID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE location_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list by location: %w", err)
	}
	return r.scanList(rows)
}

// ListByPart lista todos los items de una pieza, en todas las ubicaciones.
func (r *StockItemRepo) ListByPart(partID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE part_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, partID)
	if err != nil {
		return nil, fmt.Errorf("list by part: %w", err)
	}
	return r.scanList(rows)
}

// RelocateByLocation reasigna todos los items de una ubicación a otra.
// toLocationID vacío los deja sin ubicación.
func (r *StockItemRepo) RelocateByLocation(fromLocationID, toLocationID string) error {
	to := (*string)(nil)
	if toLocationID != "" {
		to = &toLocationID
	}
	query := `UPDATE stock_items SET location_id = $2, updated_at = now() WHERE location_id = $1`
	_, err := r.q.Exec(context.Background(), query, fromLocationID, to)
	if err != nil {
		return fmt.Errorf("relocate by location: %w", err)
	}
	return nil
}

// UsedSerials devuelve qué seriales del listado ya están asignados a la pieza.
func (r *StockItemRepo) UsedSerials(partID string, serials []int64) ([]int64, error) {
	query := `
		SELECT serial_number FROM stock_items
		WHERE part_id = $1 AND serial_number = ANY($2)
		ORDER BY serial_number`
	rows, err := r.q.Query(context.Background(), query, partID, serials)
	if err != nil {
		return nil, fmt.Errorf("used serials: %w", err)
	}
	defer rows.Close()
	var used []int64
	for rows.Next() {
		var s int64
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		used = append(used, s)
	}
	return used, rows.Err()
}

// TotalStockByPart suma el stock de una pieza en todas las ubicaciones.
func (r *StockItemRepo) TotalStockByPart(partID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_items WHERE part_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, partID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total stock by part: %w", err)
	}
	return total, nil
}

// CountByLocation devuelve la cantidad de items directos por ubicación.
func (r *StockItemRepo) CountByLocation() (map[string]int, error) {
	query := `
		SELECT location_id, COUNT(*) FROM stock_items
		WHERE location_id IS NOT NULL
		GROUP BY location_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("count by location: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var locationID string
		var n int
		if err := rows.Scan(&locationID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[locationID] = n
	}
	return counts, rows.Err()
}

func (r *StockItemRepo) scanOne(row pgx.Row, op string) (*entity.StockItem, error) {
	var item entity.StockItem
	var locationID *string
	err := row.Scan(
		&item.ID, &item.PartID, &locationID, &item.Quantity, &item.SerialNumber,
		&item.Batch, &item.Notes, &item.DeleteOnDeplete, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if locationID != nil {
		item.LocationID = *locationID
	}
	return &item, nil
}

func (r *StockItemRepo) scanList(rows pgx.Rows) ([]*entity.StockItem, error) {
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var item entity.StockItem
		var locationID *string
		if err := rows.Scan(
			&item.ID, &item.PartID, &locationID, &item.Quantity, &item.SerialNumber,
			&item.Batch, &item.Notes, &item.DeleteOnDeplete, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		if locationID != nil {
			item.LocationID = *locationID
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
