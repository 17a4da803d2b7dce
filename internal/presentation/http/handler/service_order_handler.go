package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/domain/enum"
	"github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
)

// ServiceOrderHandler handles service order HTTP requests
type ServiceOrderHandler struct {
	orderService *service.ServiceOrderService
}

// NewServiceOrderHandler creates a new service order handler
func NewServiceOrderHandler(orderService *service.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{orderService: orderService}
}

// List handles listing service orders; ?search= matches the number or client name
func (h *ServiceOrderHandler) List(c *gin.Context) {
	var filter request.ServiceOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	var repoFilter repository.ServiceOrderFilter
	if filter.ClientID != "" {
		id, err := parseUUIDField("id_cliente", filter.ClientID)
		if err != nil {
			response.Error(c, err)
			return
		}
		repoFilter.ClientID = &id
	}

	result, err := h.orderService.ListServiceOrders(c.Request.Context(), paginationParams(c), repoFilter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Service orders retrieved successfully", result)
}

// Create handles opening a service order
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var req request.CreateServiceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	clientID, err := parseUUIDField("id_cliente", req.ClientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	orderDate, err := parseDate("data_pedido", req.OrderDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.CreateServiceOrder(c.Request.Context(), &service.CreateServiceOrderInput{
		ClientID:  clientID,
		Number:    req.Number,
		OrderDate: orderDate,
		Status:    enum.ServiceOrderStatus(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service order created successfully", order)
}

// NextNumber previews the number of the next service order
func (h *ServiceOrderHandler) NextNumber(c *gin.Context) {
	number, err := h.orderService.NextNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Next service order number", gin.H{"numero_os": number})
}

// Get handles getting a single service order
func (h *ServiceOrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetServiceOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service order retrieved successfully", order)
}

// Update handles updating a service order
func (h *ServiceOrderHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.UpdateServiceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	orderDate, err := parseDate("data_pedido", req.OrderDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.UpdateServiceOrderInput{
		ID:        id,
		Number:    req.Number,
		OrderDate: orderDate,
	}
	if req.ClientID != nil {
		clientID, err := parseUUIDField("id_cliente", *req.ClientID)
		if err != nil {
			response.Error(c, err)
			return
		}
		input.ClientID = &clientID
	}
	if req.Status != nil {
		status := enum.ServiceOrderStatus(*req.Status)
		input.Status = &status
	}

	order, err := h.orderService.UpdateServiceOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service order updated successfully", order)
}

// Delete handles deleting a service order
func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteServiceOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service order deleted successfully", nil)
}

// Statuses lists the service order statuses
func (h *ServiceOrderHandler) Statuses(c *gin.Context) {
	response.OK(c, "Service order statuses", enum.ServiceOrderStatuses)
}
