package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada de trazabilidad de stock.
const (
	TrackingCreated    = "created"    // alta del item
	TrackingMoved      = "moved"      // cambio de ubicación
	TrackingAdded      = "added"      // entrada de cantidad
	TrackingRemoved    = "removed"    // salida de cantidad
	TrackingStocktake  = "stocktake"  // conteo físico
	TrackingSplit      = "split"      // división de stock
	TrackingSerialized = "serialized" // asignación de número de serie
)

// StockItemTracking es una entrada inmutable de auditoría sobre un StockItem.
// Append-only: nunca se edita ni se borra una vez escrita; si el item se
// elimina, su historial se conserva. Las entradas de un item quedan
// totalmente ordenadas por CreatedAt.
type StockItemTracking struct {
	ID         string
	ItemID     string
	Kind       string // created, moved, added, removed, stocktake, split, serialized
	Title      string // etiqueta legible
	Notes      string
	UserID     string // vacío si la operación no tiene usuario asociado
	Quantity   decimal.Decimal // cantidad del item después de la operación
	LocationID string          // ubicación del item después de la operación
	CreatedAt  time.Time
}
