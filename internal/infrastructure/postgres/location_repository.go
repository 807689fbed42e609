package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
// El árbol se guarda plano (adjacency list, parent_id nullable); la
// estructura se arma en memoria con el motor de jerarquía.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, parent_id, name, description, created_at, updated_at`

// Create persiste una ubicación. parent_id vacío se guarda como NULL (raíz).
func (r *LocationRepo) Create(location *entity.StockLocation) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	parentID := (*string)(nil)
	if location.ParentID != "" {
		parentID = &location.ParentID
	}
	_, err := r.q.Exec(context.Background(), query,
		location.ID, parentID, location.Name, location.Description,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. Devuelve nil, nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM stock_locations WHERE id = $1`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return loc, nil
}

// Update actualiza nombre, descripción y padre de una ubicación.
func (r *LocationRepo) Update(location *entity.StockLocation) error {
	query := `
		UPDATE stock_locations
		SET parent_id = $2, name = $3, description = $4, updated_at = $5
		WHERE id = $1`
	parentID := (*string)(nil)
	if location.ParentID != "" {
		parentID = &location.ParentID
	}
	_, err := r.q.Exec(context.Background(), query,
		location.ID, parentID, location.Name, location.Description, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List devuelve todas las ubicaciones.
func (r *LocationRepo) List() ([]*entity.StockLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM stock_locations ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return scanLocations(rows)
}

// ListByParent devuelve los hijos directos de un nodo (vacío = raíces).
func (r *LocationRepo) ListByParent(parentID string) ([]*entity.StockLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM stock_locations WHERE parent_id = $1 ORDER BY name, id`
	var args []any
	if parentID == "" {
		query = `SELECT ` + locationColumns + ` FROM stock_locations WHERE parent_id IS NULL ORDER BY name, id`
	} else {
		args = append(args, parentID)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by parent: %w", err)
	}
	return scanLocations(rows)
}

// ReparentChildren mueve todos los hijos directos de un nodo a otro padre.
func (r *LocationRepo) ReparentChildren(ofID, newParentID string) error {
	to := (*string)(nil)
	if newParentID != "" {
		to = &newParentID
	}
	query := `UPDATE stock_locations SET parent_id = $2, updated_at = now() WHERE parent_id = $1`
	_, err := r.q.Exec(context.Background(), query, ofID, to)
	if err != nil {
		return fmt.Errorf("reparent children: %w", err)
	}
	return nil
}

// Delete elimina la ubicación. El contenido debe reasignarse antes (lo hace
// el caso de uso dentro de la misma transacción).
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.StockLocation, error) {
	var loc entity.StockLocation
	var parentID *string
	err := row.Scan(&loc.ID, &parentID, &loc.Name, &loc.Description, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	if parentID != nil {
		loc.ParentID = *parentID
	}
	return &loc, nil
}

func scanLocations(rows pgx.Rows) ([]*entity.StockLocation, error) {
	defer rows.Close()
	var list []*entity.StockLocation
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}
