package dto

import "time"

// EquipmentUnitInput una unidad de un lote rastreado por unidad.
type EquipmentUnitInput struct {
	Serial        string `json:"serial" validate:"max=100"`
	WarrantyUntil *Date  `json:"warranty_until"`
}

// CreateEquipmentRequest entrada para registrar un equipo.
// SKU vacío → lo genera el sistema. PerUnit exige len(Units) == Quantity y sin WarrantyUntil propio.
type CreateEquipmentRequest struct {
	Name          string               `json:"name" validate:"required,max=200"`
	Serial        string               `json:"serial" validate:"max=100"`
	SKU           string               `json:"sku" validate:"max=100"`
	CustomerID    string               `json:"customer_id" validate:"omitempty,uuid"`
	Model         string               `json:"model" validate:"max=200"`
	Location      string               `json:"location" validate:"max=200"`
	WarrantyUntil *Date                `json:"warranty_until"`
	Quantity      int                  `json:"quantity" validate:"min=0"`
	PerUnit       bool                 `json:"per_unit"`
	Units         []EquipmentUnitInput `json:"units" validate:"dive"`
}

// UpdateEquipmentRequest sobrescritura completa de los campos editables.
type UpdateEquipmentRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Serial        string `json:"serial" validate:"max=100"`
	SKU           string `json:"sku" validate:"required,max=100"`
	CustomerID    string `json:"customer_id" validate:"omitempty,uuid"`
	Model         string `json:"model" validate:"max=200"`
	Location      string `json:"location" validate:"max=200"`
	WarrantyUntil *Date  `json:"warranty_until"`
	Quantity      int    `json:"quantity" validate:"min=0"`
}

// WarrantyDTO estado de garantía derivado al leer.
type WarrantyDTO struct {
	Status string `json:"status"` // none|valid|expiring|expired
	Days   int    `json:"days"`
	Label  string `json:"label"`
}

// EquipmentUnitResponse unidad con su propio estado de garantía.
type EquipmentUnitResponse struct {
	ID            string      `json:"id"`
	Serial        string      `json:"serial"`
	WarrantyUntil *Date       `json:"warranty_until"`
	Warranty      WarrantyDTO `json:"warranty"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Serial        string                  `json:"serial"`
	SKU           string                  `json:"sku"`
	CustomerID    string                  `json:"customer_id,omitempty"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	Model         string                  `json:"model"`
	Location      string                  `json:"location"`
	WarrantyUntil *Date                   `json:"warranty_until"`
	Warranty      WarrantyDTO             `json:"warranty"`
	Quantity      int                     `json:"quantity"`
	PerUnit       bool                    `json:"per_unit"`
	Units         []EquipmentUnitResponse `json:"units,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// EquipmentListRequest filtros del listado.
type EquipmentListRequest struct {
	PageRequest
	Search string `query:"search" validate:"max=200"`
}

// EquipmentListResponse lista paginada de equipos.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// EquipmentLookupResponse rastreo por QR: equipo, cliente y sus órdenes de servicio.
type EquipmentLookupResponse struct {
	Equipment    EquipmentResponse     `json:"equipment"`
	Customer     *CustomerResponse     `json:"customer,omitempty"`
	Maintenances []MaintenanceResponse `json:"maintenances"`
}
