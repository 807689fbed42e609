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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, category_id, name, description, units, trackable, created_at, updated_at`

// Create persiste una pieza. category_id vacío se guarda como NULL.
func (r *PartRepo) Create(part *entity.Part) error {
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	categoryID := (*string)(nil)
	if part.CategoryID != "" {
		categoryID = &part.CategoryID
	}
	_, err := r.q.Exec(context.Background(), query,
		part.ID, categoryID, part.Name, part.Description, part.Units,
		part.Trackable, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene una pieza por ID. Devuelve nil, nil si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	part, err := scanPart(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return part, nil
}

// Update actualiza los datos de catálogo de una pieza.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts
		SET category_id = $2, name = $3, description = $4, units = $5,
		    trackable = $6, updated_at = $7
		WHERE id = $1`
	categoryID := (*string)(nil)
	if part.CategoryID != "" {
		categoryID = &part.CategoryID
	}
	_, err := r.q.Exec(context.Background(), query,
		part.ID, categoryID, part.Name, part.Description, part.Units,
		part.Trackable, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// ListByCategory lista las piezas directas de una categoría.
func (r *PartRepo) ListByCategory(categoryID string) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE category_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, part)
	}
	return list, rows.Err()
}

// RelocateByCategory reasigna todas las piezas de una categoría a otra.
// toCategoryID vacío las deja sin categoría.
func (r *PartRepo) RelocateByCategory(fromCategoryID, toCategoryID string) error {
	to := (*string)(nil)
	if toCategoryID != "" {
		to = &toCategoryID
	}
	query := `UPDATE parts SET category_id = $2, updated_at = now() WHERE category_id = $1`
	_, err := r.q.Exec(context.Background(), query, fromCategoryID, to)
	if err != nil {
		return fmt.Errorf("relocate by category: %w", err)
	}
	return nil
}

// CountByCategory devuelve la cantidad de piezas directas por categoría.
func (r *PartRepo) CountByCategory() (map[string]int, error) {
	query := `
		SELECT category_id, COUNT(*) FROM parts
		WHERE category_id IS NOT NULL
		GROUP BY category_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var categoryID string
		var n int
		if err := rows.Scan(&categoryID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[categoryID] = n
	}
	return counts, rows.Err()
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var part entity.Part
	var categoryID *string
	err := row.Scan(
		&part.ID, &categoryID, &part.Name, &part.Description, &part.Units,
		&part.Trackable, &part.CreatedAt, &part.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan part: %w", err)
	}
	if categoryID != nil {
		part.CategoryID = *categoryID
	}
	return &part, nil
}
