package entity

import "time"

// StockLocation representa un nodo del árbol jerárquico de ubicaciones
// físicas. El grafo de padres es acíclico: un nodo nunca puede volverse su
// propio ancestro; el chequeo se hace antes de persistir cualquier cambio.
type StockLocation struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NodeID, NodeParentID y NodeName implementan hierarchy.Node.
func (l *StockLocation) NodeID() string       { return l.ID }
func (l *StockLocation) NodeParentID() string { return l.ParentID }
func (l *StockLocation) NodeName() string     { return l.Name }
