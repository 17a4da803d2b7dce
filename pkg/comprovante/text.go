package comprovante

import (
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/otica-api/pkg/utils"
)

const (
	rule = "━━━━━━━━━━━━━━━━━━━━━"

	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"

	// DefaultCountryCode is prefixed to recipient phone numbers.
	DefaultCountryCode = "55"

	shareBaseURL = "https://wa.me/"
)

// Text renders the receipt as the plain text shown on screen and shared
// with the client. A nil receipt renders "".
func (r *Receipt) Text() string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("🥽 *" + r.Header.ShopName + "* 🥽")
	line("📄 CNPJ: " + r.Header.CNPJ)
	line("📍 " + r.Header.Address)
	line("📞 Tel: " + r.Header.Phone)
	line("")

	line(rule)
	line("💰 *CUPOM FISCAL* #" + r.OrderNumber)
	line("📅 Data: " + r.IssuedAt.Format(dateLayout))
	line("🕐 Hora: " + r.IssuedAt.Format(timeLayout))
	line(rule)
	line("")

	line("👤 *CLIENTE*")
	line(r.CustomerName)
	line("")

	line("📦 *ITENS*")
	for _, item := range r.Items {
		line("• " + item.Name + " - " + Money(item.Amount))
		for _, d := range item.Details {
			line("  " + d.Label + ": " + d.Value)
		}
	}

	line(rule)
	line("💸 *TOTAL: " + Money(r.Total) + "*")
	if r.HasDownPayment() {
		line("💰 Entrada: " + Money(r.DownPayment))
	}
	if r.HasInstallments() {
		line("📝 Parcelas: " + r.InstallmentPlan())
	}
	line(rule)
	line("")

	line("💳 *PAGAMENTO*")
	line("🔸 Forma: " + r.Method)
	line("🔸 Status: " + r.Status)
	line("")

	for _, d := range r.Settlement() {
		icon := "📝"
		if d.Label == "Entrada" {
			icon = "💰"
		}
		line(icon + " • " + d.Label + ": " + d.Value)
	}

	line("")
	line(rule)
	line("🙏 *Obrigado pela preferência!*")
	line("✨ *Volte sempre!*")
	b.WriteString(rule)

	return b.String()
}

// Formatter renders receipts with a configured shop header and builds the
// share links for them.
type Formatter struct {
	Header      Header
	CountryCode string
}

// NewFormatter returns a formatter; empty settings fall back to defaults.
func NewFormatter(h Header, countryCode string) *Formatter {
	if h == (Header{}) {
		h = DefaultHeader
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Formatter{Header: h, CountryCode: countryCode}
}

// Build composes the receipt of a payment with the formatter's header.
func (f *Formatter) Build(p *Payment, now time.Time) *Receipt {
	return Build(p, now, f.Header)
}

// Format renders the receipt text of a payment. A nil payment renders "".
func (f *Formatter) Format(p *Payment, now time.Time) string {
	return f.Build(p, now).Text()
}

// Link builds the share link for a receipt text. See MessagingLink.
func (f *Formatter) Link(text, recipientPhone string) string {
	return MessagingLink(text, recipientPhone, f.CountryCode)
}

// FormatReceipt renders the receipt text of a payment with DefaultHeader.
func FormatReceipt(p *Payment, now time.Time) string {
	return Build(p, now, DefaultHeader).Text()
}

// MessagingLink builds a WhatsApp deep link carrying the whole text as the
// percent-encoded "text" query parameter. When recipientPhone holds any
// digits, the link targets that number, digits only, prefixed with the
// country code; otherwise the link lets the user pick the recipient.
func MessagingLink(text, recipientPhone, countryCode string) string {
	target := shareBaseURL
	if digits := utils.OnlyDigits(recipientPhone); digits != "" {
		target += utils.OnlyDigits(countryCode) + digits
	}
	return target + "?text=" + encodeComponent(text)
}

// encodeComponent percent-encodes s for use inside a query value, spaces as
// %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
