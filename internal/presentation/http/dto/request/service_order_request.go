package request

// CreateServiceOrderRequest represents a service order creation request.
// numero_os is generated when omitted.
type CreateServiceOrderRequest struct {
	ClientID  string  `json:"id_cliente" binding:"required"`
	Number    string  `json:"numero_os" binding:"omitempty,max=20"`
	OrderDate *string `json:"data_pedido"` // YYYY-MM-DD, today when omitted
	Status    string  `json:"status"`
}

// UpdateServiceOrderRequest represents a service order update request
type UpdateServiceOrderRequest struct {
	ClientID  *string `json:"id_cliente"`
	Number    *string `json:"numero_os" binding:"omitempty,max=20"`
	OrderDate *string `json:"data_pedido"`
	Status    *string `json:"status"`
}

// ServiceOrderFilterRequest represents service order list filters
type ServiceOrderFilterRequest struct {
	ClientID string `form:"id_cliente"`
}
