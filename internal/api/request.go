package api

import "github.com/shopspring/decimal"

// CreateProductRequest is the wire shape of POST /api/v1/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
