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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL. Mismo
// esquema plano que las ubicaciones.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, parent_id, name, description, created_at, updated_at`

// Create persiste una categoría. parent_id vacío se guarda como NULL (raíz).
func (r *CategoryRepo) Create(category *entity.PartCategory) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	query := `
		INSERT INTO part_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	parentID := (*string)(nil)
	if category.ParentID != "" {
		parentID = &category.ParentID
	}
	_, err := r.q.Exec(context.Background(), query,
		category.ID, parentID, category.Name, category.Description,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.PartCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM part_categories WHERE id = $1`
	cat, err := scanCategory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return cat, nil
}

// Update actualiza nombre, descripción y padre de una categoría.
func (r *CategoryRepo) Update(category *entity.PartCategory) error {
	query := `
		UPDATE part_categories
		SET parent_id = $2, name = $3, description = $4, updated_at = $5
		WHERE id = $1`
	parentID := (*string)(nil)
	if category.ParentID != "" {
		parentID = &category.ParentID
	}
	_, err := r.q.Exec(context.Background(), query,
		category.ID, parentID, category.Name, category.Description, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List devuelve todas las categorías.
func (r *CategoryRepo) List() ([]*entity.PartCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM part_categories ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return scanCategories(rows)
}

// ListByParent devuelve los hijos directos de un nodo (vacío = raíces).
func (r *CategoryRepo) ListByParent(parentID string) ([]*entity.PartCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM part_categories WHERE parent_id = $1 ORDER BY name, id`
	var args []any
	if parentID == "" {
		query = `SELECT ` + categoryColumns + ` FROM part_categories WHERE parent_id IS NULL ORDER BY name, id`
	} else {
		args = append(args, parentID)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by parent: %w", err)
	}
	return scanCategories(rows)
}

// ReparentChildren mueve todos los hijos directos de un nodo a otro padre.
func (r *CategoryRepo) ReparentChildren(ofID, newParentID string) error {
	to := (*string)(nil)
	if newParentID != "" {
		to = &newParentID
	}
	query := `UPDATE part_categories SET parent_id = $2, updated_at = now() WHERE parent_id = $1`
	_, err := r.q.Exec(context.Background(), query, ofID, to)
	if err != nil {
		return fmt.Errorf("reparent children: %w", err)
	}
	return nil
}

// Delete elimina la categoría.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM part_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.PartCategory, error) {
	var cat entity.PartCategory
	var parentID *string
	err := row.Scan(&cat.ID, &parentID, &cat.Name, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	if parentID != nil {
		cat.ParentID = *parentID
	}
	return &cat, nil
}

func scanCategories(rows pgx.Rows) ([]*entity.PartCategory, error) {
	defer rows.Close()
	var list []*entity.PartCategory
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}
