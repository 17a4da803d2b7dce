package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the shop summary; ?start= and ?end= bound the period revenue
func (h *ReportHandler) Summary(c *gin.Context) {
	var query request.ReportQuery
	_ = c.ShouldBindQuery(&query)

	start, err := parseDate("start", &query.Start)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDate("end", &query.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report summary retrieved successfully", summary)
}
