package user

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UserUseCase resuelve la identidad autenticada a su registro de usuario.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Get devuelve el usuario por id.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
