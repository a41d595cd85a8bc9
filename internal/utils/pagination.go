package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// GetPaginationParams extracts pagination parameters from the request. The
// second result is false when the client did not ask for a page, in which
// case every row is returned.
func GetPaginationParams(c *gin.Context) (PaginationParams, bool) {
	rawPage, ok := c.GetQuery("page")
	if !ok {
		return PaginationParams{}, false
	}

	page, _ := strconv.Atoi(rawPage)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{Page: page, Limit: limit}, true
}

// NewPaginationResponse describes one page out of total rows
func NewPaginationResponse(p PaginationParams, total int64) PaginationResponse {
	return PaginationResponse{
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: int64(p.Page*p.Limit) < total,
	}
}
