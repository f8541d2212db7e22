package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/jwt"
)

// Claves de c.Locals que deja AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// TokenVerifier valida el Bearer token (lo implementa *jwt.Signer).
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware exige "Authorization: Bearer <token>" y guarda el dueño en c.Locals.
func AuthMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		if raw == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		scheme, token, found := strings.Cut(raw, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, claims.UserID())
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUserID dueño autenticado; "" fuera de las rutas protegidas.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
