package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/comprovante"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/sangkips/otica-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memOrders struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]entity.ServiceOrder
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
	m.rows[o.ID] = *o
	return nil
}

func (m *memOrders) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	m.mu.Lock()
	o, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	o.Client, _ = m.clients.GetByID(ctx, o.ClientID)
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
	return nil, nil
}

func (m *memOrders) Update(_ context.Context, o *entity.ServiceOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[o.ID] = *o
	return nil
}

func (m *memOrders) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memOrders) List(_ context.Context, _ *pagination.PaginationParams, _ repository.ServiceOrderFilter) ([]entity.ServiceOrder, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.ServiceOrder, 0, len(m.rows))
	for _, o := range m.rows {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (m *memOrders) LastNumber(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	last, best := "", -1
	for _, o := range m.rows {
		if seq, ok := utils.OrderSequence(o.Number); ok && seq > best {
			last, best = o.Number, seq
		}
	}
	return last, nil
}

type memPayments struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]entity.Payment
	orders *memOrders
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
		out = append(out, p)
	}
	return out, int64(len(out)), nil
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
			break
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

// jammedPrinter fails every job.
type jammedPrinter struct{}

func (jammedPrinter) Print(context.Context, []byte) error { return errors.New("paper jam") }
func (jammedPrinter) IsConnected(context.Context) bool    { return false }
func (jammedPrinter) Close() error                        { return nil }

type shop struct {
	clients     *memClients
	orders      *memOrders
	payments    *memPayments
	frameLenses *memFrameLenses
	router      *gin.Engine
}

func newShop() *shop {
	clients := newMemClients()
	orders := newMemOrders(clients)
	s := &shop{
		clients:     clients,
		orders:      orders,
		payments:    &memPayments{rows: map[uuid.UUID]entity.Payment{}, orders: orders},
		frameLenses: &memFrameLenses{},
	}

	log := zap.NewNop()
	receipts := service.NewReceiptService(s.payments, s.frameLenses, jammedPrinter{}, "network", 48,
		comprovante.NewFormatter(comprovante.Header{}, ""), time.UTC, log)
	orderHandler := NewServiceOrderHandler(service.NewServiceOrderService(orders, clients, log))
	paymentHandler := NewPaymentHandler(service.NewPaymentService(s.payments, orders, log), receipts)
	frameLensHandler := NewFrameLensHandler(service.NewFrameLensService(s.frameLenses, orders, log))

	r := gin.New()
	r.POST("/service-orders", orderHandler.Create)
	r.GET("/service-orders/next-number", orderHandler.NextNumber)
	r.GET("/service-orders/:id", orderHandler.Get)
	r.GET("/payments", paymentHandler.List)
	r.POST("/payments", paymentHandler.Create)
	r.GET("/payments/:id", paymentHandler.Get)
	r.GET("/payments/:id/receipt", paymentHandler.Receipt)
	r.POST("/payments/:id/receipt/print", paymentHandler.PrintReceipt)
	r.POST("/frame-lens", frameLensHandler.Create)
	s.router = r
	return s
}

func (s *shop) seedClient(t *testing.T, name, phone string) *entity.Client {
	t.Helper()
	c := &entity.Client{Name: name, Phone: &phone}
	require.NoError(t, s.clients.Create(context.Background(), c))
	return c
}

func (s *shop) openOrder(t *testing.T, clientID uuid.UUID) entity.ServiceOrder {
	t.Helper()
	w, env := do(t, s.router, http.MethodPost, "/service-orders", `{"id_cliente":"`+clientID.String()+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order entity.ServiceOrder
	require.NoError(t, json.Unmarshal(env.Data, &order))
	return order
}

func (s *shop) pay(t *testing.T, orderID uuid.UUID, body string) entity.Payment {
	t.Helper()
	w, env := do(t, s.router, http.MethodPost, "/payments", `{"id_os":"`+orderID.String()+`",`+body+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p entity.Payment
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestServiceOrderHandler_CreateAndNextNumber(t *testing.T) {
	s := newShop()
	client := s.seedClient(t, "Maria Souza", "(11) 98765-4321")

	w, env := do(t, s.router, http.MethodGet, "/service-orders/next-number", "")
	require.Equal(t, http.StatusOK, w.Code)
	var next struct {
		Number string `json:"numero_os"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &next))
	assert.Equal(t, "OS001", next.Number)

	order := s.openOrder(t, client.ID)
	assert.Equal(t, "OS001", order.Number)
	assert.Equal(t, client.ID, order.ClientID)
	assert.Equal(t, "aberta", string(order.Status))

	_, env = do(t, s.router, http.MethodGet, "/service-orders/next-number", "")
	require.NoError(t, json.Unmarshal(env.Data, &next))
	assert.Equal(t, "OS002", next.Number)

	w, env = do(t, s.router, http.MethodPost, "/service-orders",
		`{"id_cliente":"`+client.ID.String()+`","numero_os":"os001"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestServiceOrderHandler_CreateRejectsBadInput(t *testing.T) {
	s := newShop()

	w, _ := do(t, s.router, http.MethodPost, "/service-orders", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, s.router, http.MethodPost, "/service-orders", `{"id_cliente":"abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_cliente", env.Errors[0].Field)

	w, env = do(t, s.router, http.MethodPost, "/service-orders", `{"id_cliente":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_cliente", env.Errors[0].Field)

	client := s.seedClient(t, "João", "")
	w, env = do(t, s.router, http.MethodPost, "/service-orders",
		`{"id_cliente":"`+client.ID.String()+`","data_pedido":"01/10/2026"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "data_pedido", env.Errors[0].Field)
}

func TestPaymentHandler_CreateListAndGet(t *testing.T) {
	s := newShop()
	order := s.openOrder(t, s.seedClient(t, "Maria Souza", "").ID)
	other := s.openOrder(t, s.seedClient(t, "João", "").ID)

	p := s.pay(t, order.ID, `"valor_armacao":"200","valor_lente":250,"forma_pagamento":"pix"`)
	assert.Equal(t, order.ID, p.ServiceOrderID)
	assert.Equal(t, "450", p.Total.String())
	assert.Equal(t, "pendente", p.Status.String())
	s.pay(t, other.ID, `"valor_total":"100"`)

	w, env := do(t, s.router, http.MethodGet, "/payments?id_os="+order.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []entity.Payment `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, p.ID, page.Items[0].ID)

	w, env = do(t, s.router, http.MethodGet, "/payments/"+p.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got entity.Payment
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "450", got.Total.String())

	w, _ = do(t, s.router, http.MethodGet, "/payments/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, s.router, http.MethodGet, "/payments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_CreateRejectsBadInput(t *testing.T) {
	s := newShop()
	order := s.openOrder(t, s.seedClient(t, "Maria Souza", "").ID)

	w, env := do(t, s.router, http.MethodPost, "/payments", `{"id_os":"OS001","valor_total":"10"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_os", env.Errors[0].Field)

	w, env = do(t, s.router, http.MethodPost, "/payments", `{"valor_total":"10"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_os", env.Errors[0].Field)

	w, env = do(t, s.router, http.MethodPost, "/payments",
		`{"id_os":"`+order.ID.String()+`","valor_total":"10","forma_pagamento":"cheque"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "forma_pagamento", env.Errors[0].Field)

	w, _ = do(t, s.router, http.MethodGet, "/payments?id_os=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPaymentHandler_ReceiptLink(t *testing.T) {
	s := newShop()
	order := s.openOrder(t, s.seedClient(t, "Maria Souza", "(11) 98765-4321").ID)
	p := s.pay(t, order.ID, `"valor_total":"450","forma_pagamento":"dinheiro"`)

	var receipt struct {
		OrderNumber  string `json:"numero_os"`
		CustomerName string `json:"cliente"`
		Text         string `json:"texto"`
		Link         string `json:"link"`
	}

	w, env := do(t, s.router, http.MethodGet, "/payments/"+p.ID.String()+"/receipt", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, order.Number, receipt.OrderNumber)
	assert.Equal(t, "Maria Souza", receipt.CustomerName)
	assert.Contains(t, receipt.Text, order.Number)
	assert.True(t, strings.HasPrefix(receipt.Link, "https://wa.me/5511987654321?text="), receipt.Link)

	w, env = do(t, s.router, http.MethodGet,
		"/payments/"+p.ID.String()+"/receipt?phone="+url.QueryEscape("(21) 99999-0000"), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.True(t, strings.HasPrefix(receipt.Link, "https://wa.me/5521999990000?text="), receipt.Link)

	link, err := url.Parse(receipt.Link)
	require.NoError(t, err)
	assert.Equal(t, receipt.Text, link.Query().Get("text"))

	w, _ = do(t, s.router, http.MethodGet, "/payments/"+uuid.NewString()+"/receipt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_PrintFailureStillReturnsReceipt(t *testing.T) {
	s := newShop()
	order := s.openOrder(t, s.seedClient(t, "Maria Souza", "").ID)
	p := s.pay(t, order.ID, `"valor_total":"450"`)

	w, env := do(t, s.router, http.MethodPost, "/payments/"+p.ID.String()+"/receipt/print", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Receipt generated but printing failed", env.Message)

	var out struct {
		OrderNumber string `json:"numero_os"`
		Text        string `json:"texto"`
		Printed     bool   `json:"impresso"`
		Warning     string `json:"aviso"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.False(t, out.Printed)
	assert.Contains(t, out.Warning, "paper jam")
	assert.Equal(t, order.Number, out.OrderNumber)
	assert.NotEmpty(t, out.Text)
}

func TestFrameLensHandler_Create(t *testing.T) {
	s := newShop()
	order := s.openOrder(t, s.seedClient(t, "Maria Souza", "").ID)

	w, env := do(t, s.router, http.MethodPost, "/frame-lens",
		`{"id_os":"`+order.ID.String()+`","marca_armacao":"Ray-Ban","lente_comprada":"Multifocal","ponte":"18"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var fl entity.FrameLens
	require.NoError(t, json.Unmarshal(env.Data, &fl))
	assert.Equal(t, order.ID, fl.ServiceOrderID)
	require.NotNil(t, fl.FrameBrand)
	assert.Equal(t, "Ray-Ban", *fl.FrameBrand)
	assert.Len(t, s.frameLenses.rows, 1)

	for _, body := range []string{
		`{"marca_armacao":"Ray-Ban"}`,
		`{"id_os":"OS001"}`,
		`{"id_os":"` + uuid.NewString() + `"}`,
	} {
		w, env := do(t, s.router, http.MethodPost, "/frame-lens", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		require.Len(t, env.Errors, 1, body)
		assert.Equal(t, "id_os", env.Errors[0].Field, body)
	}
	assert.Len(t, s.frameLenses.rows, 1)
}
