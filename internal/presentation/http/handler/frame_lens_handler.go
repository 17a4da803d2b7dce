package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
)

// FrameLensHandler handles frame/lens selection HTTP requests
type FrameLensHandler struct {
	frameLensService *service.FrameLensService
}

// NewFrameLensHandler creates a new frame/lens handler
func NewFrameLensHandler(frameLensService *service.FrameLensService) *FrameLensHandler {
	return &FrameLensHandler{frameLensService: frameLensService}
}

func frameLensFields(req *request.FrameLensRequest) *service.FrameLensFields {
	return &service.FrameLensFields{
		FrameBrand:      req.FrameBrand,
		FrameReference:  req.FrameReference,
		FrameMaterial:   req.FrameMaterial,
		Lens:            req.Lens,
		Treatment:       req.Treatment,
		Tint:            req.Tint,
		Horizontal:      req.Horizontal,
		Vertical:        req.Vertical,
		Bridge:          req.Bridge,
		LargestDiagonal: req.LargestDiagonal,
	}
}

// Create handles recording a selection for a service order
func (h *FrameLensHandler) Create(c *gin.Context) {
	var req request.FrameLensRequest
	if !bindJSON(c, &req) {
		return
	}

	orderID, err := parseOrderID(req.ServiceOrderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	fl, err := h.frameLensService.CreateFrameLens(c.Request.Context(), orderID, frameLensFields(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Frame/lens selection created successfully", fl)
}

// Get handles getting a single selection
func (h *FrameLensHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	fl, err := h.frameLensService.GetFrameLens(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame/lens selection retrieved successfully", fl)
}

// ListByOrder handles listing the selections of a service order
func (h *FrameLensHandler) ListByOrder(c *gin.Context) {
	orderID, ok := paramID(c)
	if !ok {
		return
	}

	list, err := h.frameLensService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame/lens selections retrieved successfully", list)
}

// Update handles updating a selection
func (h *FrameLensHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.FrameLensRequest
	if !bindJSON(c, &req) {
		return
	}

	fl, err := h.frameLensService.UpdateFrameLens(c.Request.Context(), id, frameLensFields(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame/lens selection updated successfully", fl)
}

// Delete handles deleting a selection
func (h *FrameLensHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.frameLensService.DeleteFrameLens(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame/lens selection deleted successfully", nil)
}
