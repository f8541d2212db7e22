package dto

import "time"

// RegisterMovementRequest body para POST /api/equipments/:id/movements.
type RegisterMovementRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=incoming outgoing"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
	Date       *Date  `json:"date"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// MovementResponse entrada del historial.
type MovementResponse struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	CustomerID  string    `json:"customer_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
