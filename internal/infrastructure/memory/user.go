package memory

import (
	"context"
	"strings"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email se compara sin distinguir mayúsculas.
type UserRepo struct {
	s  *Store
	st *state
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.view(r.st, func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(r.st, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
