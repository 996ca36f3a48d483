package api

import (
	"github.com/Checker-Finance/catalog-api/internal/catalog"
)

// Validate enforces the shared request schema at the HTTP boundary before
// the service is called.
func (r CreateProductRequest) Validate() error {
	return catalog.ValidateSchema(r.Name, r.Description, r.Price)
}
