package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/sangkips/otica-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests.

type memClients struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.Client
}

func newMemClients() *memClients {
	return &memClients{rows: map[uuid.UUID]entity.Client{}}
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	m.rows[c.ID] = *c
	return nil
}

func (m *memClients) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memClients) GetByCPF(_ context.Context, cpf string) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.CPF != nil && *c.CPF == cpf {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = *c
	return nil
}

func (m *memClients) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memClients) List(_ context.Context, params *pagination.PaginationParams) ([]entity.Client, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Client
	for _, c := range m.rows {
		if params.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type memOrders struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]entity.ServiceOrder
	deleted []entity.ServiceOrder
	numbers []string
	clients *memClients
}

func newMemOrders(clients *memClients) *memOrders {
	return &memOrders{rows: map[uuid.UUID]entity.ServiceOrder{}, clients: clients}
}

func (m *memOrders) Create(_ context.Context, o *entity.ServiceOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	row := *o
	row.Client = nil
	m.rows[o.ID] = row
	m.numbers = append(m.numbers, o.Number)
	return nil
}

func (m *memOrders) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	m.mu.Lock()
	o, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	if m.clients != nil {
		o.Client, _ = m.clients.GetByID(ctx, o.ClientID)
	}
	return &o, nil
}

func (m *memOrders) GetByNumber(_ context.Context, number string) (*entity.ServiceOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.rows {
		if o.Number == number {
			return &o, nil
		}
	}
	for _, o := range m.deleted {
		if o.Number == number {
			return &o, nil
		}
	}
	return nil, nil
}

func (m *memOrders) Update(_ context.Context, o *entity.ServiceOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *o
	row.Client = nil
	m.rows[o.ID] = row
	return nil
}

func (m *memOrders) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.rows[id]; ok {
		m.deleted = append(m.deleted, o)
	}
	delete(m.rows, id)
	return nil
}

func (m *memOrders) List(_ context.Context, _ *pagination.PaginationParams, filter repository.ServiceOrderFilter) ([]entity.ServiceOrder, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.ServiceOrder
	for _, o := range m.rows {
		if filter.ClientID == nil || o.ClientID == *filter.ClientID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

// LastNumber includes deleted orders, like the unscoped query it stands in for.
func (m *memOrders) LastNumber(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	last, best := "", -1
	for _, n := range m.numbers {
		if seq, ok := utils.OrderSequence(n); ok && seq > best {
			last, best = n, seq
		}
	}
	return last, nil
}

type memFrameLenses struct {
	mu   sync.Mutex
	rows []entity.FrameLens
}

func (m *memFrameLenses) Create(_ context.Context, fl *entity.FrameLens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fl.ID == uuid.Nil {
		fl.ID = uuid.New()
	}
	m.rows = append(m.rows, *fl)
	return nil
}

func (m *memFrameLenses) GetByID(_ context.Context, id uuid.UUID) (*entity.FrameLens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, fl := range m.rows {
		if fl.ID == id {
			return &fl, nil
		}
	}
	return nil, nil
}

func (m *memFrameLenses) Update(_ context.Context, fl *entity.FrameLens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == fl.ID {
			m.rows[i] = *fl
		}
	}
	return nil
}

func (m *memFrameLenses) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memFrameLenses) ListByOrder(_ context.Context, orderID uuid.UUID) ([]entity.FrameLens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.FrameLens
	for _, fl := range m.rows {
		if fl.ServiceOrderID == orderID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (m *memFrameLenses) FirstByOrder(ctx context.Context, orderID uuid.UUID) (*entity.FrameLens, error) {
	rows, _ := m.ListByOrder(ctx, orderID)
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

type memPrescriptions struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]entity.Prescription
	updates int
}

func newMemPrescriptions() *memPrescriptions {
	return &memPrescriptions{rows: map[uuid.UUID]entity.Prescription{}}
}

func (m *memPrescriptions) Create(_ context.Context, p *entity.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memPrescriptions) GetByID(_ context.Context, id uuid.UUID) (*entity.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPrescriptions) Update(_ context.Context, p *entity.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.rows[p.ID] = *p
	return nil
}

func (m *memPrescriptions) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memPrescriptions) ListByOrder(_ context.Context, orderID uuid.UUID) ([]entity.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Prescription
	for _, p := range m.rows {
		if p.ServiceOrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memPayments struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]entity.Payment
	orders *memOrders
}

func newMemPayments(orders *memOrders) *memPayments {
	return &memPayments{rows: map[uuid.UUID]entity.Payment{}, orders: orders}
}

func (m *memPayments) Create(_ context.Context, p *entity.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPayments) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, err := m.GetByID(ctx, id)
	if p == nil || err != nil {
		return p, err
	}
	p.ServiceOrder, err = m.orders.GetByID(ctx, p.ServiceOrderID)
	return p, err
}

func (m *memPayments) Update(_ context.Context, p *entity.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	return nil
}

func (m *memPayments) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memPayments) List(_ context.Context, _ *pagination.PaginationParams, filter repository.PaymentFilter) ([]entity.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Payment
	for _, p := range m.rows {
		if filter.ServiceOrderID != nil && p.ServiceOrderID != *filter.ServiceOrderID {
			continue
		}
		if filter.Status != "" && p.Status.String() != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fixture struct {
	clients       *memClients
	orders        *memOrders
	frameLenses   *memFrameLenses
	prescriptions *memPrescriptions
	payments      *memPayments
	log           *zap.Logger
}

func newFixture() *fixture {
	clients := newMemClients()
	orders := newMemOrders(clients)
	return &fixture{
		clients:       clients,
		orders:        orders,
		frameLenses:   &memFrameLenses{},
		prescriptions: newMemPrescriptions(),
		payments:      newMemPayments(orders),
		log:           zap.NewNop(),
	}
}

// seedOrder stores a client and an order for it.
func (f *fixture) seedOrder(number, clientName, phone string) *entity.ServiceOrder {
	ctx := context.Background()
	client := &entity.Client{Name: clientName}
	if phone != "" {
		client.Phone = &phone
	}
	_ = f.clients.Create(ctx, client)
	order := &entity.ServiceOrder{
		Number:    number,
		OrderDate: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		ClientID:  client.ID,
	}
	_ = f.orders.Create(ctx, order)
	return order
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func intPtr(n int) *int { return &n }
