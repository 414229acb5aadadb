package utils

import (
	"strconv"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in page payloads
type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// GetPaginationParams extracts the page number from the request. The page size
// is fixed per listing, so only "page" is read from the query string.
func GetPaginationParams(c *gin.Context, perPage int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if perPage < constants.MinPageSize || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
}

// NewPaginationResponse builds pagination metadata for a listing.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	lastPage := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		lastPage++
	}
	if lastPage == 0 {
		lastPage = 1
	}

	return PaginationResponse{
		CurrentPage: params.Page,
		PerPage:     params.Limit,
		Total:       total,
		LastPage:    lastPage,
	}
}
