package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment and receipt HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
	receiptService *service.ReceiptService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, receiptService *service.ReceiptService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, receiptService: receiptService}
}

func paymentInput(req *request.PaymentRequest) *service.PaymentInput {
	return &service.PaymentInput{
		FrameValue:       req.FrameValue,
		LensValue:        req.LensValue,
		Total:            req.Total,
		DownPayment:      req.DownPayment,
		Installments:     req.Installments,
		InstallmentValue: req.InstallmentValue,
		Method:           req.Method,
		Status:           req.Status,
	}
}

// List handles listing payments; filters: ?id_os=, ?status=
func (h *PaymentHandler) List(c *gin.Context) {
	var filter request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	repoFilter := repository.PaymentFilter{Status: filter.Status}
	if filter.ServiceOrderID != "" {
		id, err := parseUUIDField("id_os", filter.ServiceOrderID)
		if err != nil {
			response.Error(c, err)
			return
		}
		repoFilter.ServiceOrderID = &id
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), paginationParams(c), repoFilter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// ListByOrder handles listing the payments of a service order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := paramID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), paginationParams(c),
		repository.PaymentFilter{ServiceOrderID: &orderID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Create handles recording a payment
func (h *PaymentHandler) Create(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	orderID, err := parseOrderID(req.ServiceOrderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.paymentService.CreatePayment(c.Request.Context(), orderID, paymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment created successfully", p)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", p)
}

// Update handles updating a payment
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.paymentService.UpdatePayment(c.Request.Context(), id, paymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", p)
}

// Delete handles deleting a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", nil)
}

// Options returns the payment methods and statuses
func (h *PaymentHandler) Options(c *gin.Context) {
	response.OK(c, "Payment options", h.paymentService.GetOptions())
}

// Receipt returns the comprovante of a payment with its share link.
// ?phone= overrides the client's phone as the link recipient.
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var query request.ReceiptQuery
	_ = c.ShouldBindQuery(&query)

	out, err := h.receiptService.GetReceipt(c.Request.Context(), id, query.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated", response.NewReceiptResponse(out))
}

// PrintReceipt sends the comprovante of a payment to the thermal printer.
// A printer failure still returns the receipt, with a warning.
func (h *PaymentHandler) PrintReceipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.receiptService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !out.Printed {
		response.OK(c, "Receipt generated but printing failed", response.NewPrintResponse(out))
		return
	}
	response.OK(c, "Receipt printed successfully", response.NewPrintResponse(out))
}

// PrinterStatus returns the printer connection status
func (h *PaymentHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus(c.Request.Context()))
}
