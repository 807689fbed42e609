package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateStockItemRequest body para POST /api/stock.
type CreateStockItemRequest struct {
	PartID          string          `json:"part_id"`
	LocationID      string          `json:"location_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Batch           string          `json:"batch,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	DeleteOnDeplete bool            `json:"delete_on_deplete,omitempty"`
}

// AdjustStockRequest body para add/take/stocktake sobre un item.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// MoveStockRequest body para POST /api/stock/:id/move. Quantity nil u omitida
// significa "toda la cantidad restante".
type MoveStockRequest struct {
	LocationID string           `json:"location_id"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// SplitStockRequest body para POST /api/stock/:id/split. LocationID vacío
// deja la nueva porción en la ubicación actual.
type SplitStockRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	LocationID string          `json:"location_id,omitempty"`
}

// SerializeStockRequest body para POST /api/stock/:id/serialize. Serials es
// la especificación textual ("1-5, 8, 10-12") que valida el parser.
type SerializeStockRequest struct {
	Quantity   int    `json:"quantity"`
	Serials    string `json:"serials"`
	LocationID string `json:"location_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ValidateSerialsRequest body para la pre-validación de seriales desde formularios.
type ValidateSerialsRequest struct {
	Serials  string `json:"serials"`
	Quantity int    `json:"quantity"`
}

// ValidateSerialsResponse resultado de la pre-validación.
type ValidateSerialsResponse struct {
	Serials []int64 `json:"serials"`
}

// StockItemResponse representación HTTP de un StockItem.
type StockItemResponse struct {
	ID              string          `json:"id"`
	PartID          string          `json:"part_id"`
	LocationID      string          `json:"location_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	SerialNumber    *int64          `json:"serial_number,omitempty"`
	Batch           string          `json:"batch,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	DeleteOnDeplete bool            `json:"delete_on_deplete"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewStockItemResponse mapea la entidad al DTO.
func NewStockItemResponse(it *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:              it.ID,
		PartID:          it.PartID,
		LocationID:      it.LocationID,
		Quantity:        it.Quantity,
		SerialNumber:    it.SerialNumber,
		Batch:           it.Batch,
		Notes:           it.Notes,
		DeleteOnDeplete: it.DeleteOnDeplete,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

// TrackingEntryResponse representación HTTP de una entrada de historial.
type TrackingEntryResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Kind       string          `json:"kind"`
	Title      string          `json:"title"`
	Notes      string          `json:"notes,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	LocationID string          `json:"location_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewTrackingEntryResponse mapea la entidad al DTO.
func NewTrackingEntryResponse(e *entity.StockItemTracking) TrackingEntryResponse {
	return TrackingEntryResponse{
		ID:         e.ID,
		ItemID:     e.ItemID,
		Kind:       e.Kind,
		Title:      e.Title,
		Notes:      e.Notes,
		UserID:     e.UserID,
		Quantity:   e.Quantity,
		LocationID: e.LocationID,
		CreatedAt:  e.CreatedAt,
	}
}

// BarcodeResponse payload escaneable de una entidad.
type BarcodeResponse struct {
	Barcode string `json:"barcode"`
}
