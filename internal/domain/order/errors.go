package order

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrMissingField    = errors.New("required field is missing")
	ErrUnknownStatus   = errors.New("unknown order status")
	ErrTotalTooLarge   = errors.New("order total must be below 10000000000.00")
)
