package algebra

import "errors"

// ErrInvalidArgument is returned when an operation receives an argument
// outside its domain, such as a non-positive power exponent.
var ErrInvalidArgument = errors.New("invalid argument")
