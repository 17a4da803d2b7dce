package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusTotal aggregates the payments of one status
type StatusTotal struct {
	Status string
	Count  int64
	Total  decimal.Decimal
}

// RecentOrderResult is one row of the recent orders list
type RecentOrderResult struct {
	ID         uuid.UUID
	Number     string
	ClientName string
	OrderDate  time.Time
	Status     string
}

// Totals are the shop-wide record counts
type Totals struct {
	Clients       int64
	Orders        int64
	Prescriptions int64
}

// ReportRepository defines the aggregation queries behind the reports page
type ReportRepository interface {
	// GetTotals counts clients, service orders and prescriptions
	GetTotals(ctx context.Context) (Totals, error)

	// GetRevenue sums valor_total of paid payments
	GetRevenue(ctx context.Context) (decimal.Decimal, error)

	// GetRevenueBetween sums valor_total of paid payments whose order date lies in [start, end]
	GetRevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// GetPaymentsByStatus groups payments by status; a missing status counts as pendente
	GetPaymentsByStatus(ctx context.Context) ([]StatusTotal, error)

	// GetRecentOrders returns the latest service orders with client names
	GetRecentOrders(ctx context.Context, limit int) ([]RecentOrderResult, error)

	// GetRecentClients returns the most recently registered clients
	GetRecentClients(ctx context.Context, limit int) ([]entity.Client, error)
}
