package services

import "errors"

// Checkout errors the HTTP layer maps to client responses. Anything else
// coming out of the order service is a storage failure.
var (
	ErrInvalidCart  = errors.New("invalid cart data")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrMissingBuyer = errors.New("name and address are required")
)
