package dto

import "time"

// MaintenanceRequest entrada para crear o actualizar una orden de servicio.
type MaintenanceRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid"`
	OpenedAt    *Date  `json:"opened_at"`
	EndedAt     *Date  `json:"ended_at"`
	CompletedAt *Date  `json:"completed_at"`
	Technician  string `json:"technician" validate:"max=200"`
	Problem     string `json:"problem" validate:"max=2000"`
	Notes       string `json:"notes" validate:"max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// MaintenanceResponse salida de una orden de servicio.
type MaintenanceResponse struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"order_number"`
	EquipmentID    string    `json:"equipment_id"`
	EquipmentName  string    `json:"equipment_name"`
	EquipmentModel string    `json:"equipment_model"`
	CustomerName   string    `json:"customer_name,omitempty"`
	OpenedAt       Date      `json:"opened_at"`
	EndedAt        *Date     `json:"ended_at"`
	CompletedAt    *Date     `json:"completed_at"`
	Technician     string    `json:"technician"`
	Problem        string    `json:"problem"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
