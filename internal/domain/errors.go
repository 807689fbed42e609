package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrHierarchyCycle    = errors.New("la operación crearía un ciclo en el árbol")
)

// ValidationError acumula todos los problemas corregibles por el usuario
// detectados en una operación (seriales malformados, cantidades inválidas,
// seriales duplicados, etc.). Nunca se corta en el primer problema: el
// caller recibe la lista completa para mostrarla de una sola vez.
type ValidationError struct {
	Problems []string
}

// NewValidationError construye el agregado con los problemas indicados.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// Add agrega un problema a la lista.
func (e *ValidationError) Add(problem string) {
	e.Problems = append(e.Problems, problem)
}

// Addf agrega un problema con formato.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// HasProblems indica si se acumuló al menos un problema.
func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// Error implementa la interfaz error con todos los problemas concatenados.
func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// AsValidationError extrae el *ValidationError de un error si lo contiene.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
