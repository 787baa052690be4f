package pricing

import "errors"

var (
	// ErrInvalidUnit is returned for a unit outside gram, ounce, pound, kilogram.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidInput is returned when a price or quantity that must be positive is not.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidQuantity is returned for negative or non-finite quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
