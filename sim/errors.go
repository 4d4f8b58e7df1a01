package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched (errors.Is) by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError describes a rejected simulation parameter.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is reports ErrInvalidParameter as a match so callers need not type-assert.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParam(field string, value any, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

func requirePositive(field string, v int) error {
	if v <= 0 {
		return invalidParam(field, v, "must be positive")
	}
	return nil
}
