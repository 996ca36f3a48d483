package catalog

import "fmt"

// InvalidArgumentError reports a business-rule violation on a specific
// request field. The transport layer maps it to a 400 response.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidArgument(field, message string) error {
	return &InvalidArgumentError{Field: field, Message: message}
}

// OutOfRangeError reports pagination parameters outside policy bounds.
// The transport layer maps it to a 400 response.
type OutOfRangeError struct {
	Message string
}

func (e *OutOfRangeError) Error() string {
	return e.Message
}

func outOfRange(format string, args ...any) error {
	return &OutOfRangeError{Message: fmt.Sprintf(format, args...)}
}
