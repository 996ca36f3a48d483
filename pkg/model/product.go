package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a single catalog record as persisted in
// catalog.products and returned by the API.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`                  // trimmed, never empty
	Description *string         `json:"description,omitempty"` // trimmed, nil when absent
	Price       decimal.Decimal `json:"price"`                 // numeric(10,2), > 0
	CreatedAt   time.Time       `json:"createdAt"`             // UTC, assigned once at creation
}

// PagedResult is a read-only window over the product listing.
// TotalPages is derived from TotalItems and PageSize at query time.
type PagedResult struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}
