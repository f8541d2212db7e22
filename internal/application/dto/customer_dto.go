package dto

import "time"

// CustomerRequest entrada para crear o actualizar un cliente.
type CustomerRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	TaxID       string `json:"tax_id" validate:"max=20"`
	ContactName string `json:"contact_name" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=30"`
	Address     string `json:"address" validate:"max=300"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"company_name"`
	TaxID          string    `json:"tax_id"`
	ContactName    string    `json:"contact_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	EquipmentCount int       `json:"equipment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
