// Package memory implementa los puertos de persistencia en memoria, para tests y entornos efímeros
// (STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"sync"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ equipment.TxRunner = (*Store)(nil)
)

// Operaciones sobre las que se puede inyectar una falla con FailNext.
const (
	OpEquipmentCreate = "equipment.create"
	OpEquipmentUpdate = "equipment.update"
	OpEquipmentAdjust = "equipment.adjust"
	OpUnitCreate      = "unit.create"
	OpMovementAppend  = "movement.append"
	OpCustomerGet     = "customer.get"
)

type state struct {
	users        map[string]entity.User
	customers    map[string]entity.Customer
	equipments   map[string]entity.Equipment
	units        map[string][]entity.EquipmentUnit // por equipment id, en orden de alta
	movements    []entity.EquipmentMovement        // append-only
	maintenances map[string]entity.Maintenance
	orderSeq     map[string]int // secuencia de OS por dueño
}

func newState() state {
	return state{
		users:        make(map[string]entity.User),
		customers:    make(map[string]entity.Customer),
		equipments:   make(map[string]entity.Equipment),
		units:        make(map[string][]entity.EquipmentUnit),
		maintenances: make(map[string]entity.Maintenance),
		orderSeq:     make(map[string]int),
	}
}

func (st *state) clone() state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.customers {
		c.customers[k] = v
	}
	for k, v := range st.equipments {
		c.equipments[k] = v
	}
	for k, v := range st.units {
		c.units[k] = append([]entity.EquipmentUnit(nil), v...)
	}
	c.movements = append([]entity.EquipmentMovement(nil), st.movements...)
	for k, v := range st.maintenances {
		c.maintenances[k] = v
	}
	for k, v := range st.orderSeq {
		c.orderSeq[k] = v
	}
	return c
}

// Store almacenamiento en memoria. Las unidades de trabajo (Run, RunRegistration) se serializan
// con un único mutex: es el equivalente del SELECT FOR UPDATE del adaptador PostgreSQL.
type Store struct {
	mu            sync.Mutex
	state         state
	transactional bool
	faults        map[string]error
}

// Option configura el Store.
type Option func(*Store)

// WithoutTransactions las escrituras de una unidad de trabajo se aplican en el acto y un error
// posterior no las deshace (como un backend sin transacciones multi-fila).
func WithoutTransactions() Option {
	return func(s *Store) { s.transactional = false }
}

// NewStore construye un Store vacío, transaccional por defecto.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:         newState(),
		transactional: true,
		faults:        make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailNext hace que la próxima llamada a op devuelva err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault consume la falla programada para op. Requiere s.mu tomado.
func (s *Store) fault(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// Transactional indica si un error dentro de Run deshace las escrituras.
func (s *Store) Transactional() bool { return s.transactional }

// Run ejecuta fn con los repositorios del ledger. En modo transaccional trabaja sobre una copia
// del estado y solo la publica si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	movRepo repository.EquipmentMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return s.unitOfWork(func(st *state) error {
		return fn(&EquipmentRepo{s: s, st: st}, &MovementRepo{s: s, st: st}, &CustomerRepo{s: s, st: st})
	})
}

// RunRegistration ejecuta fn con los repositorios del alta de equipos.
func (s *Store) RunRegistration(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	unitRepo repository.EquipmentUnitRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return s.unitOfWork(func(st *state) error {
		return fn(&EquipmentRepo{s: s, st: st}, &UnitRepo{s: s, st: st}, &CustomerRepo{s: s, st: st})
	})
}

func (s *Store) unitOfWork(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.transactional {
		return fn(&s.state)
	}
	work := s.state.clone()
	if err := fn(&work); err != nil {
		return err
	}
	s.state = work
	return nil
}

// view ejecuta fn sobre st si el repo pertenece a una unidad de trabajo, o sobre el estado vivo con el lock.
func (s *Store) view(st *state, fn func(st *state) error) error {
	if st != nil {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// Repositorios fuera de unidad de trabajo (cada llamada toma el lock).

func (s *Store) Equipments() *EquipmentRepo     { return &EquipmentRepo{s: s} }
func (s *Store) Units() *UnitRepo               { return &UnitRepo{s: s} }
func (s *Store) Movements() *MovementRepo       { return &MovementRepo{s: s} }
func (s *Store) Customers() *CustomerRepo       { return &CustomerRepo{s: s} }
func (s *Store) Maintenances() *MaintenanceRepo { return &MaintenanceRepo{s: s} }
func (s *Store) Users() *UserRepo               { return &UserRepo{s: s} }
