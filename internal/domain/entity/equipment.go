package entity

import "time"

// Equipment representa un lote de equipos de un dueño (usuario), con SKU único por dueño.
// CustomerID vacío significa que la empresa operadora lo tiene en su poder.
//
// Garantía como unión etiquetada: o bien el lote es uniforme (WarrantyUntil opcional, sin Units),
// o bien se rastrea por unidad (PerUnit = true, WarrantyUntil nil y una EquipmentUnit por unidad).
type Equipment struct {
	ID            string
	OwnerID       string
	Name          string
	Serial        string
	SKU           string
	CustomerID    string // holder actual; vacío = empresa operadora
	Model         string
	Location      string
	WarrantyUntil *time.Time
	PerUnit       bool
	Quantity      int // nunca negativa
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de lectura (join), no se persisten en equipments.
	CustomerName string
	Units        []EquipmentUnit
}

// HeldByCustomer indica si el equipo está en manos de un cliente.
func (e *Equipment) HeldByCustomer() bool { return e.CustomerID != "" }

// EquipmentUnit unidad física de un lote heterogéneo, con su propio serial y garantía.
type EquipmentUnit struct {
	ID            string
	EquipmentID   string
	Serial        string
	WarrantyUntil *time.Time
	CreatedAt     time.Time
}
