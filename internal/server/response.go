package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

// EntityResponse wraps a single record.
type EntityResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Metadata describes one page of a listing.
type Metadata struct {
	Total       int    `json:"total"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
	OrderBy     string `json:"order_by,omitempty"`
	DescOrder   bool   `json:"desc_order"`
}

// GetAllResponse wraps one page of records.
type GetAllResponse[T any] struct {
	Message  string   `json:"message"`
	Data     []T      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// DeleteResponse acknowledges a soft delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// pageQuery carries the parsed listing query.
type pageQuery struct {
	Page      int
	Limit     int
	OrderBy   string
	DescOrder bool
}

// parsePageQuery reads page, limit, order_by and desc_order with the
// API's bounds: page >= 1, 1 <= limit <= 50.
func parsePageQuery(c *fiber.Ctx) (pageQuery, error) {
	q := pageQuery{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", defaultPageLimit),
		OrderBy:   c.Query("order_by"),
		DescOrder: c.QueryBool("desc_order"),
	}

	if q.Page < 1 {
		return q, badQuery("page must be >= 1")
	}
	if q.Limit < 1 || q.Limit > maxPageLimit {
		return q, badQuery("limit must be between 1 and 50")
	}
	return q, nil
}

func (q pageQuery) request() repository.PageRequest {
	return repository.PageRequest{
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
		OrderField: q.OrderBy,
		Desc:       q.DescOrder,
	}
}

func (q pageQuery) metadata(total int) Metadata {
	totalPages := total / q.Limit
	if total%q.Limit != 0 {
		totalPages++
	}
	return Metadata{
		Total:       total,
		Page:        q.Page,
		Limit:       q.Limit,
		TotalPages:  totalPages,
		HasNext:     q.Page < totalPages,
		HasPrevious: q.Page > 1 && total > 0,
		OrderBy:     q.OrderBy,
		DescOrder:   q.DescOrder,
	}
}

// idQuery reads the ?id= query parameter every by-id route uses.
func idQuery(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Query("id")
	if raw == "" {
		return uuid.Nil, badQuery("id query parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badQuery("id must be a valid uuid")
	}
	return id, nil
}

func badQuery(msg string) error {
	return errors.New(msg, errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest).
		WithTextCode("invalid_query")
}

func badBody(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "malformed request body").
		WithCode(errors.CodeBadRequest).
		WithTextCode("invalid_body")
}
