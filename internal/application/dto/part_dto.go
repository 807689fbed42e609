package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	Units       string `json:"units,omitempty"`
	Trackable   bool   `json:"trackable,omitempty"`
}

// PartResponse representación HTTP de una pieza.
type PartResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Units       string    `json:"units,omitempty"`
	Trackable   bool      `json:"trackable"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPartResponse mapea la entidad al DTO.
func NewPartResponse(p *entity.Part) PartResponse {
	return PartResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Units:       p.Units,
		Trackable:   p.Trackable,
		CreatedAt:   p.CreatedAt,
	}
}

// PartStockResponse stock total agregado de una pieza.
type PartStockResponse struct {
	PartID     string          `json:"part_id"`
	TotalStock decimal.Decimal `json:"total_stock"`
}
