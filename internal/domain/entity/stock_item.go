package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa una cantidad física de una pieza en una ubicación.
// Invariantes: Quantity >= 0 siempre; un item serializado tiene Quantity = 1;
// el par (PartID, SerialNumber) es único entre todos los items de la pieza.
// La mutación de Quantity/Location pasa exclusivamente por el motor de stock.
type StockItem struct {
	ID              string
	PartID          string // inmutable tras la creación
	LocationID      string // vacío = sin ubicación (estado terminal para la mayoría de operaciones)
	Quantity        decimal.Decimal
	SerialNumber    *int64 // nil si el item no está serializado
	Batch           string
	Notes           string
	DeleteOnDeplete bool // si true, el item se elimina al llegar a cantidad 0
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Serialized indica si el item tiene número de serie asignado.
func (s *StockItem) Serialized() bool {
	return s.SerialNumber != nil
}

// HasLocation indica si el item está en alguna ubicación.
func (s *StockItem) HasLocation() bool {
	return s.LocationID != ""
}

// String devuelve una representación legible del item (cantidad x pieza).
func (s *StockItem) String() string {
	if s.Serialized() {
		return fmt.Sprintf("%s #%d", s.PartID, *s.SerialNumber)
	}
	return fmt.Sprintf("%s x %s", s.Quantity.String(), s.PartID)
}
