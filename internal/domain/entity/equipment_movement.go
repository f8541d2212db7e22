package entity

import "time"

// Tipos de movimiento de equipos.
const (
	MovementIncoming = "incoming" // entrada: vuelve a la empresa operadora
	MovementOutgoing = "outgoing" // salida: sale hacia un cliente
)

// ValidMovementKind indica si kind es un tipo de movimiento conocido.
func ValidMovementKind(kind string) bool {
	return kind == MovementIncoming || kind == MovementOutgoing
}

// EquipmentMovement entrada inmutable del historial de un equipo. El ledger es solo-append:
// no se edita ni se elimina.
type EquipmentMovement struct {
	ID          string
	EquipmentID string
	OwnerID     string
	Kind        string
	CustomerID  string // obligatorio en salidas
	Quantity    int    // siempre > 0; el signo lo da Kind
	Notes       string
	Date        time.Time // fecha informada por el usuario; no reordena el ledger
	CreatedAt   time.Time
}

// Delta devuelve el efecto con signo del movimiento sobre la cantidad del equipo.
func (m *EquipmentMovement) Delta() int {
	if m.Kind == MovementOutgoing {
		return -m.Quantity
	}
	return m.Quantity
}
