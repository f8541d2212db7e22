// Package auth registro e inicio de sesión. El id del usuario es el dueño de todas las filas.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

// MinPasswordLength largo mínimo de contraseña aceptado en el registro.
const MinPasswordLength = 6

// TokenIssuer emite el token de sesión (lo implementa *jwt.Signer).
type TokenIssuer interface {
	Sign(userID, email string) (token string, expiresAt time.Time, err error)
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	users  repository.UserRepository
	tokens TokenIssuer
	cost   int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (tests y seed usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// RegisterUser crea un usuario con la contraseña hasheada.
// ErrEmailAlreadyExists si el email (sin distinguir mayúsculas) ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "es obligatorio")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", "debe tener al menos 6 caracteres")
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Storage("get user", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	user := entity.NewUser(uuid.NewString(), email, strings.TrimSpace(in.Name), string(hash), time.Now())
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, domain.Storage("insert user", err)
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Authenticate verifica credenciales sin emitir token.
// Email desconocido y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, domain.Storage("get user", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Login autentica y emite el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	token, exp, err := uc.tokens.Sign(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: dto.ToUserResponse(user)}, nil
}
