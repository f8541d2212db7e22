package entity

import "time"

// Customer representa un cliente del dueño: puede tener equipos y ser contraparte de movimientos.
type Customer struct {
	ID          string
	OwnerID     string
	CompanyName string
	TaxID       string // CNPJ
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// EquipmentCount equipos que el cliente tiene actualmente (lectura).
	EquipmentCount int
}
