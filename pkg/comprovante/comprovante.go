// Package comprovante builds the payment receipt (cupom) handed to the
// client, either printed or shared through a WhatsApp deep link.
package comprovante

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header identifies the shop at the top of every receipt.
type Header struct {
	ShopName string
	CNPJ     string
	Address  string
	Phone    string
}

// DefaultHeader is printed when the shop details are not configured.
var DefaultHeader = Header{
	ShopName: "ARTUR ÓTICA",
	CNPJ:     "00.000.000/0001-00",
	Address:  "Endereço da Empresa",
	Phone:    "(00) 0000-0000",
}

// Payment is a read-only snapshot of a payment with its order, client and
// the first frame/lens selection of the order.
type Payment struct {
	OrderNumber  string
	CustomerName string

	FrameValue       decimal.NullDecimal
	LensValue        decimal.NullDecimal
	Total            decimal.Decimal
	DownPayment      decimal.NullDecimal
	Installments     int // 0 when not paid in installments
	InstallmentValue decimal.NullDecimal
	Method           string
	Status           string

	FrameBrand     string
	FrameReference string
	Lens           string
}

// Detail is a labelled sub-line under a receipt item.
type Detail struct {
	Label string
	Value string
}

// Item is one priced line of the receipt.
type Item struct {
	Name    string
	Amount  decimal.Decimal
	Details []Detail
}

// Receipt is the structured comprovante, composed from a payment at the
// moment it is requested. It is never stored.
type Receipt struct {
	Header       Header
	OrderNumber  string
	IssuedAt     time.Time
	CustomerName string
	Items        []Item

	Total            decimal.Decimal
	DownPayment      decimal.Decimal // zero when there is none
	Installments     int
	InstallmentValue decimal.Decimal

	Method string
	Status string
}

// Build composes the receipt of a payment. issuedAt is the moment of
// printing, not the order date. A nil payment yields a nil receipt.
func Build(p *Payment, issuedAt time.Time, h Header) *Receipt {
	if p == nil {
		return nil
	}

	r := &Receipt{
		Header:       h,
		OrderNumber:  p.OrderNumber,
		IssuedAt:     issuedAt,
		CustomerName: p.CustomerName,
		Total:        p.Total,
		Installments: p.Installments,
		Method:       strings.ToUpper(p.Method),
		Status:       strings.ToUpper(p.Status),
	}
	if nonZero(p.DownPayment) {
		r.DownPayment = p.DownPayment.Decimal
	}
	if p.InstallmentValue.Valid {
		r.InstallmentValue = p.InstallmentValue.Decimal
	}

	if nonZero(p.FrameValue) {
		item := Item{Name: "Armação", Amount: p.FrameValue.Decimal}
		if p.FrameBrand != "" {
			item.Details = append(item.Details, Detail{Label: "Marca", Value: p.FrameBrand})
		}
		if p.FrameReference != "" {
			item.Details = append(item.Details, Detail{Label: "Ref", Value: p.FrameReference})
		}
		r.Items = append(r.Items, item)
	}
	if nonZero(p.LensValue) {
		item := Item{Name: "Lente", Amount: p.LensValue.Decimal}
		if p.Lens != "" {
			item.Details = append(item.Details, Detail{Label: "Lente", Value: p.Lens})
		}
		r.Items = append(r.Items, item)
	}

	return r
}

// HasDownPayment reports whether an entrada was paid.
func (r *Receipt) HasDownPayment() bool {
	return !r.DownPayment.IsZero()
}

// HasInstallments reports whether the installment line is printed.
func (r *Receipt) HasInstallments() bool {
	return r.Installments != 0
}

// InstallmentPlan renders "{count}x R$ {value}".
func (r *Receipt) InstallmentPlan() string {
	return Plan(r.Installments, r.InstallmentValue)
}

// Settlement returns the labelled lines of the payment sub-block: the
// entrada and the remaining installments, or the installment plan alone
// when more than one installment was agreed without an entrada.
func (r *Receipt) Settlement() []Detail {
	switch {
	case r.HasDownPayment():
		lines := []Detail{{Label: "Entrada", Value: Money(r.DownPayment)}}
		if r.Installments > 0 {
			lines = append(lines, Detail{Label: "Restante", Value: r.InstallmentPlan()})
		}
		return lines
	case r.Installments > 1:
		return []Detail{{Label: "Parcelado", Value: r.InstallmentPlan()}}
	}
	return nil
}

// Money renders a BRL amount with two decimals: "R$ 450.00".
func Money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// Plan renders an installment plan: "3x R$ 116.67".
func Plan(count int, value decimal.Decimal) string {
	return strconv.Itoa(count) + "x " + Money(value)
}

func nonZero(n decimal.NullDecimal) bool {
	return n.Valid && !n.Decimal.IsZero()
}
