package models

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports malformed or inconsistent holding data.
type ValidationError struct {
	HoldingID string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.HoldingID == "" {
		return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation error: holding %s: %s %s", e.HoldingID, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
