package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeName trims surrounding whitespace and rejects blank names.
// Length bounds (3-100) are enforced by the API request schema, not here.
func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalidArgument("name", "product name is required")
	}
	return trimmed, nil
}

// normalizeDescription collapses blank input to nil and trims otherwise.
func normalizeDescription(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validatePrice rejects non-positive prices. The upper bound and 2-digit
// precision are enforced by the API request schema.
func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return invalidArgument("price", "price must be greater than zero")
	}
	return nil
}
