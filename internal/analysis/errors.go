package analysis

import "errors"

// Input-validation failures raised by the reductions in this package.
// They are deterministic: retrying with the same series yields the same error.
var (
	// ErrEmptySeries is returned when a reduction needs at least one price.
	ErrEmptySeries = errors.New("price series is empty")

	// ErrInvalidWindowSize is returned for a moving-average window below 1.
	ErrInvalidWindowSize = errors.New("window size must be greater than 0")

	// ErrDivisionByZero is returned when the first price of a series is zero
	// and a percent change would be undefined.
	ErrDivisionByZero = errors.New("first price is zero, percent change is undefined")
)
