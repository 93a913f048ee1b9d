package notation

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports malformed user input.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (input %q)", e.Message, e.Input)
}

// Is makes errors.Is(err, ErrValidation) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Common validation messages
const (
	MsgEmptyElement = "elements cannot be empty"
	MsgNoPairs      = "must contain ordered pairs in the form (a,b)"
	MsgStrayText    = "malformed relation, use: (a,b),(c,d),..."
	MsgNotInteger   = "must be a valid integer"
	MsgNotPositive  = "must be a positive integer"
)

func invalid(input, msg string) error {
	return &ValidationError{Input: input, Message: msg}
}
