package response

import (
	"time"

	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/pkg/comprovante"
)

// ReceiptDetail is a labelled sub-line of a receipt item
type ReceiptDetail struct {
	Label string `json:"rotulo"`
	Value string `json:"valor"`
}

// ReceiptItem is one priced line of a receipt
type ReceiptItem struct {
	Name    string          `json:"nome"`
	Amount  string          `json:"valor"`
	Details []ReceiptDetail `json:"detalhes,omitempty"`
}

// ReceiptResponse is a composed comprovante
type ReceiptResponse struct {
	ShopName     string          `json:"loja"`
	CNPJ         string          `json:"cnpj"`
	OrderNumber  string          `json:"numero_os"`
	IssuedAt     time.Time       `json:"emitido_em"`
	CustomerName string          `json:"cliente"`
	Items        []ReceiptItem   `json:"itens"`
	Total        string          `json:"total"`
	DownPayment  string          `json:"entrada,omitempty"`
	Installments string          `json:"parcelas,omitempty"`
	Method       string          `json:"forma_pagamento"`
	Status       string          `json:"status"`
	Settlement   []ReceiptDetail `json:"liquidacao,omitempty"`
	Text         string          `json:"texto"`
	Link         string          `json:"link"`
}

// PrintResponse reports a print job
type PrintResponse struct {
	ReceiptResponse
	Printed bool   `json:"impresso"`
	Warning string `json:"aviso,omitempty"`
}

// NewReceiptResponse renders a composed receipt
func NewReceiptResponse(out *service.ReceiptOutput) ReceiptResponse {
	r := out.Receipt
	resp := ReceiptResponse{
		ShopName:     r.Header.ShopName,
		CNPJ:         r.Header.CNPJ,
		OrderNumber:  r.OrderNumber,
		IssuedAt:     r.IssuedAt,
		CustomerName: r.CustomerName,
		Items:        make([]ReceiptItem, 0, len(r.Items)),
		Total:        comprovante.Money(r.Total),
		Method:       r.Method,
		Status:       r.Status,
		Settlement:   details(r.Settlement()),
		Text:         out.Text,
		Link:         out.Link,
	}
	if r.HasDownPayment() {
		resp.DownPayment = comprovante.Money(r.DownPayment)
	}
	if r.HasInstallments() {
		resp.Installments = r.InstallmentPlan()
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, ReceiptItem{
			Name:    item.Name,
			Amount:  comprovante.Money(item.Amount),
			Details: details(item.Details),
		})
	}
	return resp
}

// NewPrintResponse renders the outcome of a print job
func NewPrintResponse(out *service.PrintOutput) PrintResponse {
	return PrintResponse{
		ReceiptResponse: NewReceiptResponse(&out.ReceiptOutput),
		Printed:         out.Printed,
		Warning:         out.Warning,
	}
}

func details(in []comprovante.Detail) []ReceiptDetail {
	if len(in) == 0 {
		return nil
	}
	out := make([]ReceiptDetail, 0, len(in))
	for _, d := range in {
		out = append(out, ReceiptDetail{Label: d.Label, Value: d.Value})
	}
	return out
}
