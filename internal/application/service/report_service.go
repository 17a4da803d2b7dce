package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/internal/infrastructure/cache"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentLimit      = 10
	summaryKeyPrefix = "report:summary:"
)

// ReportInvalidator drops cached report summaries.
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

// reportHook is embedded by the services whose writes change the report.
type reportHook struct {
	reports ReportInvalidator
}

// UseReports makes every write of the service invalidate cached summaries.
func (h *reportHook) UseReports(r ReportInvalidator) {
	h.reports = r
}

func (h *reportHook) invalidateReports(ctx context.Context) {
	if h.reports != nil {
		h.reports.Invalidate(ctx)
	}
}

// ReportService builds the shop summary shown on the reports page.
type ReportService struct {
	reportRepo repository.ReportRepository
	cache      cache.Cache
	ttl        time.Duration
	log        *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new report service. Summaries are cached for
// ttl; a zero ttl disables caching.
func NewReportService(reportRepo repository.ReportRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) *ReportService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ReportService{
		reportRepo: reportRepo,
		cache:      c,
		ttl:        ttl,
		log:        log,
		now:        time.Now,
	}
}

// Period is the inclusive date range the period revenue is computed over.
type Period struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// PaymentStatusSummary aggregates the payments of one status.
type PaymentStatusSummary struct {
	Status string          `json:"status"`
	Count  int64           `json:"quantidade"`
	Total  decimal.Decimal `json:"total"`
}

// RecentOrder is one row of the recent orders list.
type RecentOrder struct {
	ID         uuid.UUID `json:"id"`
	Number     string    `json:"numero_os"`
	ClientName string    `json:"cliente"`
	OrderDate  time.Time `json:"data_pedido"`
	Status     string    `json:"status"`
}

// RecentClient is one row of the recent clients list.
type RecentClient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportSummary is the reports page payload.
type ReportSummary struct {
	Period          Period                 `json:"periodo"`
	TotalClients    int64                  `json:"total_clientes"`
	TotalOrders     int64                  `json:"total_ordens"`
	TotalPrescripts int64                  `json:"total_receitas"`
	Revenue         decimal.Decimal        `json:"faturamento_total"`
	PeriodRevenue   decimal.Decimal        `json:"faturamento_periodo"`
	PaymentsByState []PaymentStatusSummary `json:"pagamentos_por_status"`
	RecentOrders    []RecentOrder          `json:"ordens_recentes"`
	RecentClients   []RecentClient         `json:"clientes_recentes"`
	GeneratedAt     time.Time              `json:"gerado_em"`
}

// GetSummary builds the summary for [start, end]. Missing bounds default to
// the last month ending today.
func (s *ReportService) GetSummary(ctx context.Context, start, end *time.Time) (*ReportSummary, error) {
	period, err := s.period(start, end)
	if err != nil {
		return nil, err
	}

	key := summaryKeyPrefix + period.Start.Format(time.DateOnly) + ":" + period.End.Format(time.DateOnly)
	if s.ttl > 0 {
		var cached ReportSummary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	summary, err := s.build(ctx, period)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			s.log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops every cached summary.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	if err := s.cache.DeletePrefix(ctx, summaryKeyPrefix); err != nil {
		s.log.Warn("report cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) build(ctx context.Context, period Period) (*ReportSummary, error) {
	totals, err := s.reportRepo.GetTotals(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reportRepo.GetRevenue(ctx)
	if err != nil {
		return nil, err
	}
	periodRevenue, err := s.reportRepo.GetRevenueBetween(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reportRepo.GetPaymentsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.reportRepo.GetRecentOrders(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	clients, err := s.reportRepo.GetRecentClients(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		Period:          period,
		TotalClients:    totals.Clients,
		TotalOrders:     totals.Orders,
		TotalPrescripts: totals.Prescriptions,
		Revenue:         revenue,
		PeriodRevenue:   periodRevenue,
		PaymentsByState: make([]PaymentStatusSummary, 0, len(byStatus)),
		RecentOrders:    make([]RecentOrder, 0, len(orders)),
		RecentClients:   make([]RecentClient, 0, len(clients)),
		GeneratedAt:     s.now(),
	}
	for _, st := range byStatus {
		summary.PaymentsByState = append(summary.PaymentsByState, PaymentStatusSummary(st))
	}
	for _, o := range orders {
		summary.RecentOrders = append(summary.RecentOrders, RecentOrder(o))
	}
	for _, c := range clients {
		summary.RecentClients = append(summary.RecentClients, RecentClient{
			ID:        c.ID,
			Name:      c.Name,
			Phone:     c.PhoneNumber(),
			CreatedAt: c.CreatedAt,
		})
	}
	return summary, nil
}

// period resolves the report range to whole days.
func (s *ReportService) period(start, end *time.Time) (Period, error) {
	today := truncateDay(s.now())
	p := Period{Start: today.AddDate(0, -1, 0), End: today}
	if start != nil {
		p.Start = truncateDay(*start)
	}
	if end != nil {
		p.End = truncateDay(*end)
	}
	if p.End.Before(p.Start) {
		return Period{}, apperror.NewFieldError("end", "must not be before start")
	}
	return p, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
