package entity

import "time"

// Part representa una pieza o SKU del catálogo. El núcleo sólo necesita la
// referencia y la bandera Trackable; precios, BOM y proveedores viven en
// subsistemas externos.
type Part struct {
	ID          string
	CategoryID  string // vacío si no está categorizada
	Name        string
	Description string
	Units       string // unidad de medida (ej. "pcs", "m")
	Trackable   bool   // true si admite serialización por unidad
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
