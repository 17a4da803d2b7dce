package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/domain/entity"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/comprovante"
	"github.com/sangkips/otica-api/pkg/printer"
	"go.uber.org/zap"
)

// ReceiptService composes payment comprovantes and sends them to the
// thermal printer.
type ReceiptService struct {
	paymentRepo   repository.PaymentRepository
	frameLensRepo repository.FrameLensRepository
	printer       printer.Printer
	printerType   string
	charWidth     int
	formatter     *comprovante.Formatter
	log           *zap.Logger
	now           func() time.Time
}

// NewReceiptService creates a new receipt service. Receipts are stamped
// with the current time in loc.
func NewReceiptService(
	paymentRepo repository.PaymentRepository,
	frameLensRepo repository.FrameLensRepository,
	p printer.Printer,
	printerType string,
	charWidth int,
	formatter *comprovante.Formatter,
	loc *time.Location,
	log *zap.Logger,
) *ReceiptService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptService{
		paymentRepo:   paymentRepo,
		frameLensRepo: frameLensRepo,
		printer:       p,
		printerType:   printerType,
		charWidth:     charWidth,
		formatter:     formatter,
		log:           log,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// ReceiptOutput is a composed comprovante in every form it is handed out.
type ReceiptOutput struct {
	Receipt *comprovante.Receipt
	Text    string
	Link    string
}

// PrintOutput reports the outcome of a print job. Warning is set when the
// printer failed; the receipt is returned either way.
type PrintOutput struct {
	ReceiptOutput
	Printed bool
	Warning string
}

// GetReceipt composes the receipt of a payment. The share link targets
// phone when given, otherwise the client's phone.
func (s *ReceiptService) GetReceipt(ctx context.Context, paymentID uuid.UUID, phone *string) (*ReceiptOutput, error) {
	payment, err := s.loadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, payment)
	if err != nil {
		return nil, err
	}

	receipt := s.formatter.Build(snap, s.now())
	text := receipt.Text()

	recipient := ""
	if phone != nil {
		recipient = *phone
	} else if payment.ServiceOrder != nil && payment.ServiceOrder.Client != nil {
		recipient = payment.ServiceOrder.Client.PhoneNumber()
	}

	return &ReceiptOutput{
		Receipt: receipt,
		Text:    text,
		Link:    s.formatter.Link(text, recipient),
	}, nil
}

// PrintReceipt renders the receipt of a payment as ESC/POS and sends it to
// the printer.
func (s *ReceiptService) PrintReceipt(ctx context.Context, paymentID uuid.UUID) (*PrintOutput, error) {
	out, err := s.GetReceipt(ctx, paymentID, nil)
	if err != nil {
		return nil, err
	}

	result := &PrintOutput{ReceiptOutput: *out}
	if err := s.printer.Print(ctx, RenderESCPOS(out.Receipt, s.charWidth)); err != nil {
		s.log.Warn("receipt print failed",
			zap.String("payment_id", paymentID.String()),
			zap.String("printer_type", s.printerType),
			zap.Error(err))
		result.Warning = "Receipt could not be printed: " + err.Error()
		return result, nil
	}

	result.Printed = true
	s.log.Info("receipt printed",
		zap.String("payment_id", paymentID.String()),
		zap.String("order_number", out.Receipt.OrderNumber))
	return result, nil
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

func (s *ReceiptService) loadPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

func (s *ReceiptService) snapshot(ctx context.Context, payment *entity.Payment) (*comprovante.Payment, error) {
	frameLens, err := s.frameLensRepo.FirstByOrder(ctx, payment.ServiceOrderID)
	if err != nil {
		return nil, err
	}
	return payment.Snapshot(frameLens), nil
}

// RenderESCPOS converts a receipt into ESC/POS bytes. It carries the same
// lines as the shared text without the emoji decoration.
func RenderESCPOS(r *comprovante.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		TextF("CNPJ: %s", r.Header.CNPJ).
		Text(r.Header.Address).
		TextF("Tel: %s", r.Header.Phone)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.SetBold(true).
		KeyValue("CUPOM FISCAL", "#"+r.OrderNumber).
		SetBold(false).
		KeyValue("Data:", r.IssuedAt.Format("02/01/2006")).
		KeyValue("Hora:", r.IssuedAt.Format("15:04:05")).
		Separator('-')

	doc.SetBold(true).Text("CLIENTE").SetBold(false).
		Text(r.CustomerName).
		LineFeed()

	// Items
	doc.SetBold(true).Text("ITENS").SetBold(false)
	for _, item := range r.Items {
		doc.ItemLine(item.Name, comprovante.Money(item.Amount))
		for _, d := range item.Details {
			doc.Detail(d.Label, d.Value)
		}
	}

	doc.Separator('-')

	// Totals
	doc.SetBold(true).
		KeyValue("TOTAL:", comprovante.Money(r.Total)).
		SetBold(false)
	if r.HasDownPayment() {
		doc.KeyValue("Entrada:", comprovante.Money(r.DownPayment))
	}
	if r.HasInstallments() {
		doc.KeyValue("Parcelas:", r.InstallmentPlan())
	}

	doc.Separator('-')

	// Payment
	doc.SetBold(true).Text("PAGAMENTO").SetBold(false).
		KeyValue("Forma:", r.Method).
		KeyValue("Status:", r.Status)
	for _, d := range r.Settlement() {
		doc.KeyValue(d.Label+":", d.Value)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Obrigado pela preferência!").
		Text("Volte sempre!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
