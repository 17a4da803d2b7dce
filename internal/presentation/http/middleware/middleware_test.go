package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/config"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memIdempotency) GetByKey(_ context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key+"|"+endpoint], nil
}

func (m *memIdempotency) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := ikey.Key + "|" + ikey.Endpoint
	if _, ok := m.keys[k]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	m.keys[k] = ikey
	return nil
}

func (m *memIdempotency) Delete(_ context.Context, key, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key+"|"+endpoint)
	return nil
}

func (m *memIdempotency) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, v := range m.keys {
		if v.IsExpired(now) {
			delete(m.keys, k)
			n++
		}
	}
	return n, nil
}

func idempotentRouter(repo *memIdempotency, now func() time.Time, status int) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.POST("/payments", Idempotency(IdempotencyConfig{Repo: repo, Log: zap.NewNop(), Now: now}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})
	return r, &calls
}

func post(r http.Handler, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, calls := idempotentRouter(newMemIdempotency(), nil, http.StatusCreated)

	first := post(r, `{"valor_total":"450"}`, "abc")
	require.Equal(t, http.StatusCreated, first.Code)

	second := post(r, `{"valor_total":"450"}`, "abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(idempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_DifferentBodyConflicts(t *testing.T) {
	r, calls := idempotentRouter(newMemIdempotency(), nil, http.StatusCreated)

	post(r, `{"valor_total":"450"}`, "abc")
	w := post(r, `{"valor_total":"500"}`, "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	r, calls := idempotentRouter(newMemIdempotency(), nil, http.StatusCreated)

	post(r, `{}`, "")
	post(r, `{}`, "")
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	repo := newMemIdempotency()
	r, calls := idempotentRouter(repo, nil, http.StatusUnprocessableEntity)

	post(r, `{}`, "abc")
	post(r, `{}`, "abc")
	assert.Equal(t, 2, *calls)
	assert.Empty(t, repo.keys)
}

func TestIdempotency_ExpiredKeyRunsAgain(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	repo := newMemIdempotency()
	r, calls := idempotentRouter(repo, clock, http.StatusCreated)

	post(r, `{}`, "abc")
	now = now.Add(IdempotencyKeyTTL + time.Minute)
	w := post(r, `{}`, "abc")

	assert.Empty(t, w.Header().Get(idempotencyReplayedHeader))
	assert.Equal(t, 2, *calls)

	stored, err := repo.GetByKey(context.Background(), "abc", "POST /payments")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, now.Add(IdempotencyKeyTTL), stored.ExpiresAt)
	assert.JSONEq(t, w.Body.String(), stored.ResponseBody)

	replay := post(r, `{}`, "abc")
	assert.Equal(t, "true", replay.Header().Get(idempotencyReplayedHeader))
	assert.Equal(t, w.Body.String(), replay.Body.String())
	assert.Equal(t, 2, *calls)

	n, err := repo.DeleteExpired(context.Background(), now.Add(IdempotencyKeyTTL+time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIPRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestIPRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewIPRateLimiter(DefaultRateLimiterConfig())
	defer rl.Stop()

	now := time.Now()
	rl.getLimiter("10.0.0.1", now.Add(-time.Hour))
	rl.getLimiter("10.0.0.2", now)
	rl.cleanup(now)

	assert.Equal(t, 1, rl.ActiveClients())
}

func TestRateLimiterFromRequests(t *testing.T) {
	cfg := RateLimiterFromRequests(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterFromRequests(0, 60))
}

func TestLoggerMiddleware_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSMiddleware_AllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(IdempotencyKeyHeader))
}
