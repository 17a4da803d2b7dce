package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/enum"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService handles payment-related operations
type PaymentService struct {
	reportHook

	paymentRepo repository.PaymentRepository
	orderRepo   repository.ServiceOrderRepository
	log         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.ServiceOrderRepository,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo, log: log}
}

// PaymentInput carries the payment fields. On update nil fields are left
// unchanged.
type PaymentInput struct {
	FrameValue       *decimal.Decimal
	LensValue        *decimal.Decimal
	Total            *decimal.Decimal
	DownPayment      *decimal.Decimal
	Installments     *int
	InstallmentValue *decimal.Decimal
	Method           *string
	Status           *string
}

// CreatePayment records the pagamento of an existing service order.
func (s *PaymentService) CreatePayment(ctx context.Context, orderID uuid.UUID, input *PaymentInput) (*entity.Payment, error) {
	if err := requireOrder(ctx, s.orderRepo, orderID); err != nil {
		return nil, err
	}

	p := &entity.Payment{
		ServiceOrderID: orderID,
		Status:         enum.PaymentStatusPending,
	}
	input.apply(p)
	if input.Total == nil {
		p.Total = itemsTotal(p)
	}
	if input.InstallmentValue == nil {
		p.InstallmentValue = installmentValue(p)
	}

	if err := validatePayment(p); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.log.Info("payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("total", p.Total.StringFixed(2)))
	return p, nil
}

// GetPayment retrieves a payment with its service order and client
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, err := s.paymentRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return p, nil
}

// ListPayments lists payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, params *pagination.PaginationParams, filter repository.PaymentFilter) (*pagination.PaginatedResult[entity.Payment], error) {
	if filter.Status != "" && !enum.PaymentStatus(filter.Status).IsValid() {
		return nil, apperror.NewFieldError("status", "is not a valid payment status")
	}

	payments, total, err := s.paymentRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// UpdatePayment applies the sent fields. The total and the installment
// value are recomputed when they are not sent but their inputs change.
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, input *PaymentInput) (*entity.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	input.apply(p)
	if input.Total == nil && (input.FrameValue != nil || input.LensValue != nil) {
		p.Total = itemsTotal(p)
	}
	if input.InstallmentValue == nil && input.affectsInstallments() {
		p.InstallmentValue = installmentValue(p)
	}

	if err := validatePayment(p); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.log.Info("payment updated",
		zap.String("payment_id", p.ID.String()),
		zap.String("status", p.Status.String()))
	return p, nil
}

// DeletePayment deletes a payment
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NewNotFoundError("Payment")
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// PaymentOptions are the picklists offered by the payment form.
type PaymentOptions struct {
	Methods  []enum.PaymentMethod `json:"formas_pagamento"`
	Statuses []enum.PaymentStatus `json:"status"`
}

// GetOptions returns the payment methods and statuses.
func (s *PaymentService) GetOptions() *PaymentOptions {
	return &PaymentOptions{Methods: enum.PaymentMethods, Statuses: enum.PaymentStatuses}
}

func (in *PaymentInput) apply(p *entity.Payment) {
	if in.FrameValue != nil {
		p.FrameValue = decimal.NewNullDecimal(*in.FrameValue)
	}
	if in.LensValue != nil {
		p.LensValue = decimal.NewNullDecimal(*in.LensValue)
	}
	if in.Total != nil {
		p.Total = *in.Total
	}
	if in.DownPayment != nil {
		p.DownPayment = decimal.NewNullDecimal(*in.DownPayment)
	}
	if in.Installments != nil {
		p.Installments = *in.Installments
	}
	if in.InstallmentValue != nil {
		p.InstallmentValue = decimal.NewNullDecimal(*in.InstallmentValue)
	}
	if in.Method != nil {
		p.Method = enum.PaymentMethod(*in.Method)
	}
	if in.Status != nil && *in.Status != "" {
		p.Status = enum.PaymentStatus(*in.Status)
	}
}

func (in *PaymentInput) affectsInstallments() bool {
	return in.Installments != nil || in.DownPayment != nil || in.Total != nil ||
		in.FrameValue != nil || in.LensValue != nil
}

// itemsTotal is valor_armacao + valor_lente, absent values counting as zero.
func itemsTotal(p *entity.Payment) decimal.Decimal {
	return p.FrameValue.Decimal.Add(p.LensValue.Decimal)
}

// installmentValue is (valor_total - entrada) / parcelas rounded to cents,
// never negative. Without installments it keeps the current value.
func installmentValue(p *entity.Payment) decimal.NullDecimal {
	if p.Installments <= 0 {
		return p.InstallmentValue
	}
	remaining := p.Total.Sub(p.DownPayment.Decimal)
	if remaining.IsNegative() {
		return decimal.NewNullDecimal(decimal.Zero)
	}
	value := remaining.DivRound(decimal.NewFromInt(int64(p.Installments)), 2)
	return decimal.NewNullDecimal(value)
}

func validatePayment(p *entity.Payment) error {
	var fieldErrors []apperror.FieldError
	add := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}
	negative := func(field string, v decimal.NullDecimal) {
		if v.Valid && v.Decimal.IsNegative() {
			add(field, "must not be negative")
		}
	}

	negative("valor_armacao", p.FrameValue)
	negative("valor_lente", p.LensValue)
	if p.Total.IsNegative() {
		add("valor_total", "must not be negative")
	}
	negative("entrada", p.DownPayment)
	if p.Installments < 0 {
		add("parcelas", "must not be negative")
	}
	negative("valor_parcelas", p.InstallmentValue)
	if p.Method != "" && !p.Method.IsValid() {
		add("forma_pagamento", "is not a valid payment method")
	}
	if !p.Status.IsValid() {
		add("status", "is not a valid payment status")
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
