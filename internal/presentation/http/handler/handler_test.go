package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memClients struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Client
}

func newMemClients() *memClients {
	return &memClients{rows: map[uuid.UUID]*entity.Client{}}
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memClients) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memClients) GetByCPF(_ context.Context, cpf string) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.CPF != nil && *c.CPF == cpf {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = c
	return nil
}

func (m *memClients) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memClients) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.Client, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Client, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func clientRouter() *gin.Engine {
	h := NewClientHandler(service.NewClientService(newMemClients(), zap.NewNop()))
	r := gin.New()
	r.GET("/clients", h.List)
	r.POST("/clients", h.Create)
	r.GET("/clients/:id", h.Get)
	r.PUT("/clients/:id", h.Update)
	r.DELETE("/clients/:id", h.Delete)
	return r
}

func TestClientHandler_CreateAndGet(t *testing.T) {
	r := clientRouter()

	w, env := do(t, r, http.MethodPost, "/clients",
		`{"nome":" Maria Souza ","cpf":"12345678901","telefone":"(11) 98765-4321","data_nascimento":"1990-05-20"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var created entity.Client
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Maria Souza", created.Name)
	require.NotNil(t, created.CPF)
	assert.Equal(t, "123.456.789-01", *created.CPF)
	require.NotNil(t, created.BirthDate)
	assert.Equal(t, "1990-05-20", created.BirthDate.Format(dateLayout))

	w, env = do(t, r, http.MethodGet, "/clients/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got entity.Client
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestClientHandler_DuplicateCPFConflicts(t *testing.T) {
	r := clientRouter()

	w, _ := do(t, r, http.MethodPost, "/clients", `{"nome":"Ana","cpf":"123.456.789-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/clients", `{"nome":"Bia","cpf":"12345678901"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestClientHandler_BadInput(t *testing.T) {
	r := clientRouter()

	w, _ := do(t, r, http.MethodPost, "/clients", `{"cpf":"12345678901"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodPost, "/clients", `{"nome":"Ana","data_nascimento":"20/05/1990"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "data_nascimento", env.Errors[0].Field)

	w, _ = do(t, r, http.MethodGet, "/clients/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/clients/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func prescriptionRouter() *gin.Engine {
	h := NewPrescriptionHandler(service.NewPrescriptionService(nil, nil, zap.NewNop()))
	r := gin.New()
	r.POST("/prescriptions", h.Create)
	r.POST("/prescriptions/derive", h.Derive)
	r.GET("/prescriptions/options", h.Options)
	return r
}

func TestPrescriptionHandler_Derive(t *testing.T) {
	r := prescriptionRouter()

	w, env := do(t, r, http.MethodPost, "/prescriptions/derive",
		`{"od":{"esferico":"+2.00","cilindrico":-1.5,"eixo":90,"adicao":"1,50"},"oe":{"esferico":"-1.25"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var near map[string]map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &near))
	assert.Equal(t, "+3.50", near["od"]["sphere"])
	assert.Equal(t, "-1.50", near["od"]["cylinder"])
	assert.Equal(t, "90", near["od"]["axis"])
	assert.Equal(t, "", near["oe"]["sphere"])
}

func TestPrescriptionHandler_Options(t *testing.T) {
	w, env := do(t, prescriptionRouter(), http.MethodGet, "/prescriptions/options", "")
	require.Equal(t, http.StatusOK, w.Code)

	var opts service.Options
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.NotEmpty(t, opts.Sphere)
	assert.NotEmpty(t, opts.Cylinder)
	assert.NotEmpty(t, opts.Addition)
}

func TestPrescriptionHandler_CreateRequiresOrder(t *testing.T) {
	r := prescriptionRouter()

	w, env := do(t, r, http.MethodPost, "/prescriptions", `{"esferico_longe_od":"+1.00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_os", env.Errors[0].Field)

	w, env = do(t, r, http.MethodPost, "/prescriptions", `{"id_os":"OS001"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "id_os", env.Errors[0].Field)
}

func TestReportHandler_RejectsMalformedDates(t *testing.T) {
	h := NewReportHandler(service.NewReportService(nil, nil, 0, zap.NewNop()))
	r := gin.New()
	r.GET("/reports/summary", h.Summary)

	w, env := do(t, r, http.MethodGet, "/reports/summary?start=2026-13-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "start", env.Errors[0].Field)
}
