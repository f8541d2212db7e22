package inventory

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
// Sin fecha se usa el día de hoy.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, ownerID, equipmentID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		OwnerID:     ownerID,
		EquipmentID: equipmentID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		CustomerID:  in.CustomerID,
		Notes:       in.Notes,
		Date:        uc.now(),
	}
	if d := in.Date.TimePtr(); d != nil {
		input.Date = *d
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	out := dto.ToMovementResponse(mov)
	return &out, nil
}
