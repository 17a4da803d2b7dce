package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/otica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/otica-api/pkg/apperror"
	"github.com/sangkips/otica-api/pkg/pagination"
)

const dateLayout = time.DateOnly

// paramID parses the :id path parameter. On failure it writes a 400 and
// returns false.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body. On failure it writes a 400 and
// returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// paginationParams reads page, per_page and search from the query string.
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}

// parseOrderID reads the id_os of a body. An empty value yields uuid.Nil,
// which the services refuse as a missing order.
func parseOrderID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, nil
	}
	return parseUUIDField("id_os", raw)
}

func parseUUIDField(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.NewFieldError(field, "must be a valid UUID")
	}
	return id, nil
}

// parseDate reads an optional YYYY-MM-DD field.
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
