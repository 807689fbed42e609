package entity

import "time"

// PartCategory representa una categoría jerárquica de piezas. Estructuralmente
// idéntica a StockLocation: mismo árbol acíclico, mismas reglas de reparenting.
type PartCategory struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NodeID, NodeParentID y NodeName implementan hierarchy.Node.
func (c *PartCategory) NodeID() string       { return c.ID }
func (c *PartCategory) NodeParentID() string { return c.ParentID }
func (c *PartCategory) NodeName() string     { return c.Name }
