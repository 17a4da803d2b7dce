package request

import "github.com/shopspring/decimal"

// PaymentRequest carries a pagamento. Amounts accept JSON numbers or
// strings. valor_total defaults to valor_armacao + valor_lente and
// valor_parcelas to the remaining amount split over parcelas.
type PaymentRequest struct {
	ServiceOrderID   string           `json:"id_os"`
	FrameValue       *decimal.Decimal `json:"valor_armacao"`
	LensValue        *decimal.Decimal `json:"valor_lente"`
	Total            *decimal.Decimal `json:"valor_total"`
	DownPayment      *decimal.Decimal `json:"entrada"`
	Installments     *int             `json:"parcelas"`
	InstallmentValue *decimal.Decimal `json:"valor_parcelas"`
	Method           *string          `json:"forma_pagamento"`
	Status           *string          `json:"status"`
}

// PaymentFilterRequest represents payment list filters
type PaymentFilterRequest struct {
	ServiceOrderID string `form:"id_os"`
	Status         string `form:"status"`
}

// ReceiptQuery selects the recipient of the share link
type ReceiptQuery struct {
	Phone *string `form:"phone"`
}
