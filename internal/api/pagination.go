package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pawsnclaws/intake-api/internal/service/records"
)

// PaginationParams holds parsed pagination values from query params.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// ListParams is a page request plus the admin listing filters.
type ListParams struct {
	PaginationParams
	Status string
	City   string
}

// Filter converts the params into the store's list filter.
func (p ListParams) Filter() records.ListFilter {
	return records.ListFilter{Status: p.Status, City: p.City, Limit: p.Limit, Offset: p.Offset}
}

// ListFilters echoes the filters a listing was produced with.
type ListFilters struct {
	Status string `json:"status,omitempty"`
	City   string `json:"city,omitempty"`
}

// PaginatedResponse wraps a record listing with pagination metadata.
type PaginatedResponse struct {
	Data       any            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
	Filters    *ListFilters   `json:"filters,omitempty"`
}

// PaginationMeta contains pagination metadata for the response.
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// ParsePagination extracts page and limit from query params. Missing or
// non-positive values fall back to page 1 and defaultLimit; limit is capped
// at maxLimit.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) PaginationParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ParseListParams reads page, limit, status and city. Status is lowercased
// and city is normalized to a tenant slug shape; validation against the
// record kind happens in the service.
func ParseListParams(r *http.Request, defaultLimit, maxLimit int) ListParams {
	q := r.URL.Query()
	return ListParams{
		PaginationParams: ParsePagination(r, defaultLimit, maxLimit),
		Status:           strings.ToLower(strings.TrimSpace(q.Get("status"))),
		City:             strings.ToLower(strings.TrimSpace(q.Get("city"))),
	}
}

// NewListResponse builds a PaginatedResponse that also echoes any filters.
func NewListResponse(data any, params ListParams, total int) PaginatedResponse {
	resp := NewPaginatedResponse(data, params.PaginationParams, total)
	if params.Status != "" || params.City != "" {
		resp.Filters = &ListFilters{Status: params.Status, City: params.City}
	}
	return resp
}

// NewPaginatedResponse builds a PaginatedResponse from data, params, and total count.
func NewPaginatedResponse(data any, params PaginationParams, total int) PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return PaginatedResponse{
		Data: data,
		Pagination: PaginationMeta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    params.Page < totalPages,
		},
	}
}
