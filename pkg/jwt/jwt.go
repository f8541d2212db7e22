// Package jwt emite y verifica los tokens de sesión (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Claims claims registrados más el email del usuario.
// Subject es el UserID, la referencia de dueño de todas las filas.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID id del usuario dueño del token.
func (c *Claims) UserID() string { return c.Subject }

// Signer firma y valida tokens con un secreto compartido.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner construye un Signer. Un secreto vacío no falla aquí sino al firmar o verificar.
func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Sign token para userID; devuelve también el vencimiento.
func (s *Signer) Sign(userID, email string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrNoSecret
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return tok, exp, nil
}

// Verify valida firma, algoritmo, emisor y vencimiento.
// Cualquier rechazo se reporta como ErrInvalidToken envolviendo la causa.
func (s *Signer) Verify(token string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: sin sub", ErrInvalidToken)
	}
	return claims, nil
}
