package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockTrackingRepository = (*StockTrackingRepo)(nil)

// StockTrackingRepo implementación del historial de stock sobre PostgreSQL.
// La tabla no tiene FK con ON DELETE hacia stock_items: el historial
// sobrevive al item. Nunca se emite UPDATE ni DELETE sobre ella.
type StockTrackingRepo struct {
	q Querier
}

// NewStockTrackingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTrackingRepository(q Querier) *StockTrackingRepo {
	return &StockTrackingRepo{q: q}
}

const trackingColumns = `id, item_id, kind, title, notes, user_id, quantity, location_id, created_at`

// Create persiste una entrada de historial.
func (r *StockTrackingRepo) Create(entry *entity.StockItemTracking) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_item_tracking (` + trackingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	userID := (*string)(nil)
	if entry.UserID != "" {
		userID = &entry.UserID
	}
	locationID := (*string)(nil)
	if entry.LocationID != "" {
		locationID = &entry.LocationID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ItemID, entry.Kind, entry.Title, entry.Notes,
		userID, entry.Quantity, locationID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tracking entry: %w", err)
	}
	return nil
}

// ListByItem devuelve las entradas de un item, más recientes primero.
func (r *StockTrackingRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockItemTracking, error) {
	query := `
		SELECT ` + trackingColumns + ` FROM stock_item_tracking
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{itemID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tracking: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItemTracking
	for rows.Next() {
		entry, err := scanTracking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// LatestByItem devuelve la entrada más reciente de un item, o nil, nil.
func (r *StockTrackingRepo) LatestByItem(itemID string) (*entity.StockItemTracking, error) {
	query := `
		SELECT ` + trackingColumns + ` FROM stock_item_tracking
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	entry, err := scanTracking(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// CountByItem devuelve la cantidad de entradas de un item.
func (r *StockTrackingRepo) CountByItem(itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_item_tracking WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tracking: %w", err)
	}
	return n, nil
}

func scanTracking(row pgx.Row) (*entity.StockItemTracking, error) {
	var entry entity.StockItemTracking
	var userID, locationID *string
	err := row.Scan(
		&entry.ID, &entry.ItemID, &entry.Kind, &entry.Title, &entry.Notes,
		&userID, &entry.Quantity, &locationID, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan tracking entry: %w", err)
	}
	if userID != nil {
		entry.UserID = *userID
	}
	if locationID != nil {
		entry.LocationID = *locationID
	}
	return &entry, nil
}
