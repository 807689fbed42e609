package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserRepository define el puerto de resolución de identidad (DIP). El
// usuario sólo se estampa en el historial; la autenticación vive fuera.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
}
