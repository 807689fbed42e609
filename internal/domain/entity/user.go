package entity

import "time"

// User representa la identidad opaca que se estampa en las entradas de
// auditoría. La autenticación vive fuera de este servicio; aquí sólo se
// resuelve la referencia.
type User struct {
	ID        string
	Email     string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
}
