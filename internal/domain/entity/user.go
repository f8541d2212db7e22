package entity

import "time"

// User usuario del sistema. Su ID es el dueño (OwnerID) de clientes, equipos y órdenes.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser arma un usuario nuevo; sin nombre se muestra el email.
func NewUser(id, email, name, passwordHash string, now time.Time) *User {
	if name == "" {
		name = email
	}
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
