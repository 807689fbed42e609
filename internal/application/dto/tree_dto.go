package dto

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CreateNodeRequest body para crear una ubicación o categoría.
type CreateNodeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}

// UpdateNodeRequest body para renombrar/describir un nodo.
type UpdateNodeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ReparentNodeRequest body para mover un nodo bajo otro padre. ParentID
// vacío lo convierte en raíz.
type ReparentNodeRequest struct {
	ParentID string `json:"parent_id"`
}

// NodeResponse representación HTTP de un nodo del árbol con sus datos
// derivados (ruta y conteo agregado de items del subárbol).
type NodeResponse struct {
	ID          string `json:"id"`
	ParentID    string `json:"parent_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
	ItemCount   int    `json:"item_count"`
}

// NewLocationResponse mapea una ubicación al DTO con ruta y conteo.
func NewLocationResponse(l *entity.StockLocation, path string, itemCount int) NodeResponse {
	return NodeResponse{
		ID:          l.ID,
		ParentID:    l.ParentID,
		Name:        l.Name,
		Description: l.Description,
		Path:        path,
		ItemCount:   itemCount,
	}
}

// NewCategoryResponse mapea una categoría al DTO con ruta y conteo de piezas.
func NewCategoryResponse(c *entity.PartCategory, path string, partCount int) NodeResponse {
	return NodeResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Description: c.Description,
		Path:        path,
		ItemCount:   partCount,
	}
}
