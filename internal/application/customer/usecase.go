package customer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/search"
)

// UseCase CRUD de clientes del dueño.
type UseCase struct {
	repo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea un cliente. Tax id repetido para el mismo dueño → domain.ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	apply(c, in, now)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, domain.Storage("insert customer", err)
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// Get obtiene un cliente con la cantidad de equipos que tiene.
func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get customer", err)
	}
	if c == nil {
		return nil, domain.NotFound("customer", id)
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// List lista los clientes por razón social, filtrando por razón social, contacto, tax id o email.
func (uc *UseCase) List(ctx context.Context, ownerID, term string) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Storage("list customers", err)
	}
	m := search.NewMatcher(term)
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if m.Match(c.CompanyName, c.ContactName, c.TaxID, c.Email) {
			out = append(out, dto.ToCustomerResponse(c))
		}
	}
	return out, nil
}

// Update sobrescribe los datos del cliente.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get customer", err)
	}
	if c == nil {
		return nil, domain.NotFound("customer", id)
	}
	apply(c, in, time.Now())
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, domain.Storage("update customer", err)
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// Delete elimina el cliente. Rechaza con domain.ErrConflict si todavía tiene equipos.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return domain.Storage("delete customer", err)
	}
	return nil
}

func validate(in dto.CustomerRequest) error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return domain.NewValidationError("company_name", "es obligatoria")
	}
	return nil
}

func apply(c *entity.Customer, in dto.CustomerRequest, now time.Time) {
	c.CompanyName = strings.TrimSpace(in.CompanyName)
	c.TaxID = strings.TrimSpace(in.TaxID)
	c.ContactName = strings.TrimSpace(in.ContactName)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.UpdatedAt = now
}
