package repository

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
)

// UserRepository usuarios; el email es único sin distinguir mayúsculas.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	// GetByEmail (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
