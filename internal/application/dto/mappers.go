package dto

import (
	"time"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/warranty"
)

// ToWarrantyDTO etiqueta de garantía para la fecha dada respecto de now.
func ToWarrantyDTO(validUntil *time.Time, now time.Time) WarrantyDTO {
	r := warranty.Evaluate(validUntil, now)
	return WarrantyDTO{Status: string(r.Status), Days: r.Days, Label: r.Label()}
}

// ToEquipmentResponse convierte la entidad y evalúa su garantía (y la de cada unidad).
func ToEquipmentResponse(e *entity.Equipment, now time.Time) EquipmentResponse {
	out := EquipmentResponse{
		ID:            e.ID,
		Name:          e.Name,
		Serial:        e.Serial,
		SKU:           e.SKU,
		CustomerID:    e.CustomerID,
		CustomerName:  e.CustomerName,
		Model:         e.Model,
		Location:      e.Location,
		WarrantyUntil: DatePtr(e.WarrantyUntil),
		Warranty:      ToWarrantyDTO(e.WarrantyUntil, now),
		Quantity:      e.Quantity,
		PerUnit:       e.PerUnit,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	for i := range e.Units {
		out.Units = append(out.Units, ToEquipmentUnitResponse(&e.Units[i], now))
	}
	return out
}

// ToEquipmentUnitResponse unidad con su propia garantía.
func ToEquipmentUnitResponse(u *entity.EquipmentUnit, now time.Time) EquipmentUnitResponse {
	return EquipmentUnitResponse{
		ID:            u.ID,
		Serial:        u.Serial,
		WarrantyUntil: DatePtr(u.WarrantyUntil),
		Warranty:      ToWarrantyDTO(u.WarrantyUntil, now),
	}
}

func ToMovementResponse(m *entity.EquipmentMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		CustomerID:  m.CustomerID,
		Notes:       m.Notes,
		Date:        NewDate(m.Date),
		CreatedAt:   m.CreatedAt,
	}
}

func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		CompanyName:    c.CompanyName,
		TaxID:          c.TaxID,
		ContactName:    c.ContactName,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		EquipmentCount: c.EquipmentCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToMaintenanceResponse(m *entity.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		EquipmentID:    m.EquipmentID,
		EquipmentName:  m.EquipmentName,
		EquipmentModel: m.EquipmentModel,
		CustomerName:   m.CustomerName,
		OpenedAt:       NewDate(m.OpenedAt),
		EndedAt:        DatePtr(m.EndedAt),
		CompletedAt:    DatePtr(m.CompletedAt),
		Technician:     m.Technician,
		Problem:        m.Problem,
		Notes:          m.Notes,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
