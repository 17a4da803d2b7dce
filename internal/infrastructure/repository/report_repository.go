package repository

import (
	"context"
	"time"

	"github.com/sangkips/otica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetTotals(ctx context.Context) (domainRepo.Totals, error) {
	var totals domainRepo.Totals

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM cliente WHERE deleted_at IS NULL) AS clients,
			(SELECT COUNT(*) FROM ordem_servico WHERE deleted_at IS NULL) AS orders,
			(SELECT COUNT(*) FROM receita WHERE deleted_at IS NULL) AS prescriptions
	`).Scan(&totals).Error

	return totals, err
}

func (r *reportRepository) GetRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(valor_total), 0)
		FROM pagamento
		WHERE status = 'pago' AND deleted_at IS NULL
	`).Scan(&revenue).Error

	return revenue, err
}

func (r *reportRepository) GetRevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(p.valor_total), 0)
		FROM pagamento p
		JOIN ordem_servico o ON o.id = p.id_os
		WHERE p.status = 'pago'
			AND p.deleted_at IS NULL
			AND o.data_pedido BETWEEN ? AND ?
	`, start, end).Scan(&revenue).Error

	return revenue, err
}

func (r *reportRepository) GetPaymentsByStatus(ctx context.Context) ([]domainRepo.StatusTotal, error) {
	var results []domainRepo.StatusTotal

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(NULLIF(status, ''), 'pendente') AS status,
			COUNT(*) AS count,
			COALESCE(SUM(valor_total), 0) AS total
		FROM pagamento
		WHERE deleted_at IS NULL
		GROUP BY 1
		ORDER BY count DESC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reportRepository) GetRecentOrders(ctx context.Context, limit int) ([]domainRepo.RecentOrderResult, error) {
	var results []domainRepo.RecentOrderResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.id AS id,
			o.numero_os AS number,
			COALESCE(c.nome, '') AS client_name,
			o.data_pedido AS order_date,
			COALESCE(o.status, 'aberta') AS status
		FROM ordem_servico o
		LEFT JOIN cliente c ON c.id = o.id_cliente
		WHERE o.deleted_at IS NULL
		ORDER BY o.data_pedido DESC, o.created_at DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reportRepository) GetRecentClients(ctx context.Context, limit int) ([]entity.Client, error) {
	var clients []entity.Client
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}
