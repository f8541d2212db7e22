package entity

import (
	"fmt"
	"time"
)

// Estados de una orden de mantenimiento.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// ValidMaintenanceStatus indica si s es un estado conocido.
func ValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// Maintenance orden de servicio (OS) sobre un equipo.
type Maintenance struct {
	ID          string
	OwnerID     string
	EquipmentID string
	OrderNumber string // OS-000001, secuencia por dueño (la asigna el repositorio)
	OpenedAt    time.Time
	EndedAt     *time.Time
	CompletedAt *time.Time
	Technician  string
	Problem     string
	Notes       string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Campos de lectura (join).
	EquipmentName  string
	EquipmentModel string
	CustomerName   string
}

// Open indica si la orden sigue abierta (pendiente o en curso).
func (m *Maintenance) Open() bool {
	return m.Status == MaintenancePending || m.Status == MaintenanceInProgress
}

// CompletionDate fecha efectiva de conclusión: CompletedAt, si no EndedAt, si no UpdatedAt.
func (m *Maintenance) CompletionDate() *time.Time {
	switch {
	case m.CompletedAt != nil:
		return m.CompletedAt
	case m.EndedAt != nil:
		return m.EndedAt
	case !m.UpdatedAt.IsZero():
		t := m.UpdatedAt
		return &t
	}
	return nil
}

// FormatOrderNumber número visible de la orden a partir de la secuencia del dueño.
func FormatOrderNumber(seq int) string {
	return fmt.Sprintf("OS-%06d", seq)
}
