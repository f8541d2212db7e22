package ledger

import (
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
)

// Posting resultado de aplicar un movimiento al estado actual de un equipo (servicio de dominio).
type Posting struct {
	Delta      int    // efecto con signo sobre la cantidad
	Quantity   int    // cantidad resultante
	CustomerID string // holder resultante; vacío = empresa operadora
}

// ValidateMovement chequea las precondiciones de un movimiento antes de tocar el almacenamiento.
func ValidateMovement(m *entity.EquipmentMovement) error {
	if m.EquipmentID == "" {
		return domain.NewValidationError("equipment_id", "es obligatorio")
	}
	if !entity.ValidMovementKind(m.Kind) {
		return domain.NewValidationError("kind", "debe ser incoming u outgoing")
	}
	if m.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if m.Date.IsZero() {
		return domain.NewValidationError("date", "es obligatoria")
	}
	if m.Kind == entity.MovementOutgoing && m.CustomerID == "" {
		return domain.NewValidationError("customer_id", "es obligatorio en una salida")
	}
	return nil
}

// Apply calcula el nuevo estado del equipo para el movimiento m, sin efectos secundarios.
// Entrada: suma y limpia el holder. Salida: resta y el holder pasa a ser el cliente;
// si la cantidad quedaría negativa devuelve *domain.InsufficientQuantityError.
func Apply(current int, m *entity.EquipmentMovement) (Posting, error) {
	if err := ValidateMovement(m); err != nil {
		return Posting{}, err
	}
	p := Posting{Delta: m.Delta()}
	p.Quantity = current + p.Delta
	if p.Quantity < 0 {
		return Posting{}, &domain.InsufficientQuantityError{Available: current, Requested: m.Quantity}
	}
	if m.Kind == entity.MovementOutgoing {
		p.CustomerID = m.CustomerID
	}
	return p, nil
}
