package memory

import (
	"context"
	"sort"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/search"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	s  *Store
	st *state
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.view(r.st, func(st *state) error {
		if taxIDTaken(st, c.OwnerID, c.TaxID, "") {
			return domain.ErrDuplicate
		}
		cp := *c
		cp.EquipmentCount = 0
		st.customers[c.ID] = cp
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpCustomerGet); err != nil {
			return err
		}
		out = readCustomer(st, ownerID, id)
		return nil
	})
	return out, err
}

// ListByOwner ordenados por razón social.
func (r *CustomerRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.s.view(r.st, func(st *state) error {
		for id, c := range st.customers {
			if c.OwnerID == ownerID {
				list = append(list, readCustomer(st, ownerID, id))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := search.Fold(list[i].CompanyName), search.Fold(list[j].CompanyName)
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.s.view(r.st, func(st *state) error {
		cur, ok := st.customers[c.ID]
		if !ok || cur.OwnerID != c.OwnerID {
			return domain.NotFound("customer", c.ID)
		}
		if taxIDTaken(st, c.OwnerID, c.TaxID, c.ID) {
			return domain.ErrDuplicate
		}
		cp := *c
		cp.CreatedAt = cur.CreatedAt
		cp.EquipmentCount = 0
		st.customers[c.ID] = cp
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, ownerID, id string) error {
	return r.s.view(r.st, func(st *state) error {
		c, ok := st.customers[id]
		if !ok || c.OwnerID != ownerID {
			return domain.NotFound("customer", id)
		}
		if countHeld(st, id) > 0 {
			return domain.ErrConflict
		}
		delete(st.customers, id)
		return nil
	})
}

func readCustomer(st *state, ownerID, id string) *entity.Customer {
	c, ok := st.customers[id]
	if !ok || c.OwnerID != ownerID {
		return nil
	}
	c.EquipmentCount = countHeld(st, id)
	return &c
}

func countHeld(st *state, customerID string) int {
	n := 0
	for _, e := range st.equipments {
		if e.CustomerID == customerID {
			n++
		}
	}
	return n
}

func taxIDTaken(st *state, ownerID, taxID, exceptID string) bool {
	if taxID == "" {
		return false
	}
	for id, c := range st.customers {
		if id != exceptID && c.OwnerID == ownerID && c.TaxID == taxID {
			return true
		}
	}
	return false
}
