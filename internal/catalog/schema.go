package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Schema bounds applied at every ingestion boundary (HTTP and AMQP).
const (
	MinNameLen        = 3
	MaxNameLen        = 100
	MaxDescriptionLen = 500
)

// MaxPrice is the largest accepted product price.
var MaxPrice = decimal.NewFromInt(1_000_000)

// ValidateSchema enforces the request schema shared by every ingestion
// boundary: name length, description length, the price ceiling and its
// 2-digit precision. Boundaries call this before handing the request to
// the service, so no transport can persist a product another would reject.
func ValidateSchema(name, description string, price decimal.Decimal) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalidArgument("name", "product name is required")
	}
	if n := utf8.RuneCountInString(trimmed); n < MinNameLen || n > MaxNameLen {
		return invalidArgument("name", "name must be between 3 and 100 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLen {
		return invalidArgument("description", "description must be at most 500 characters")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return invalidArgument("price", "price must be greater than zero")
	}
	if price.GreaterThan(MaxPrice) {
		return invalidArgument("price", "price must be at most 1000000")
	}
	if price.Exponent() < -2 {
		return invalidArgument("price", "price must have at most 2 fractional digits")
	}
	return nil
}
