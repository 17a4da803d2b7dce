package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/otica-api/pkg/optics"
)

// PrescriptionHandler handles receita HTTP requests
type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

func prescriptionInput(req *request.PrescriptionRequest) *service.PrescriptionInput {
	return &service.PrescriptionInput{
		Right: &service.EyeInput{
			Sphere:                req.SphereOD.Ptr(),
			Cylinder:              req.CylinderOD.Ptr(),
			Axis:                  req.AxisOD.Ptr(),
			NearPupillaryDistance: req.DNPOD.Ptr(),
			SegmentHeight:         req.HeightOD.Ptr(),
			Addition:              req.AdditionOD.Ptr(),
		},
		Left: &service.EyeInput{
			Sphere:                req.SphereOE.Ptr(),
			Cylinder:              req.CylinderOE.Ptr(),
			Axis:                  req.AxisOE.Ptr(),
			NearPupillaryDistance: req.DNPOE.Ptr(),
			SegmentHeight:         req.HeightOE.Ptr(),
			Addition:              req.AdditionOE.Ptr(),
		},
	}
}

// Create handles storing a receita; near vision is derived from the far fields
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req request.PrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	orderID, err := parseOrderID(req.ServiceOrderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.prescriptionService.CreatePrescription(c.Request.Context(), orderID, prescriptionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Prescription created successfully", response.NewPrescriptionResponse(p))
}

// Get handles getting a single receita
func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.prescriptionService.GetPrescription(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription retrieved successfully", response.NewPrescriptionResponse(p))
}

// ListByOrder handles listing the receitas of a service order
func (h *PrescriptionHandler) ListByOrder(c *gin.Context) {
	orderID, ok := paramID(c)
	if !ok {
		return
	}

	list, err := h.prescriptionService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescriptions retrieved successfully", response.NewPrescriptionList(list))
}

// Update handles patching the far fields of a receita
func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.PrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.prescriptionService.UpdatePrescription(c.Request.Context(), id, prescriptionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription updated successfully", response.NewPrescriptionResponse(p))
}

// Delete handles deleting a receita
func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.prescriptionService.DeletePrescription(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription deleted successfully", nil)
}

// Derive previews the near vision of the values being typed. Nothing is stored.
func (h *PrescriptionHandler) Derive(c *gin.Context) {
	var req request.DeriveRequest
	if !bindJSON(c, &req) {
		return
	}

	near := h.prescriptionService.DeriveNear(deriveInput(req.Right), deriveInput(req.Left))
	response.OK(c, "Near vision derived", response.NearResponse{
		Right: near[optics.Right],
		Left:  near[optics.Left],
	})
}

// Options returns the diopter picklists
func (h *PrescriptionHandler) Options(c *gin.Context) {
	response.OK(c, "Prescription options", h.prescriptionService.GetOptions())
}

func deriveInput(req request.DeriveEyeRequest) service.DeriveInput {
	return service.DeriveInput{
		Sphere:   req.Sphere.String(),
		Cylinder: req.Cylinder.String(),
		Axis:     req.Axis.String(),
		Addition: req.Addition.String(),
	}
}
