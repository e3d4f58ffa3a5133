package checkout

import "errors"

var (
	// ErrEmptyCart rejects a checkout attempt with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty, nothing to order")
	// ErrMissingFields rejects a submission with a blank required field.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrInvalidPhone rejects a phone that does not match +7 (XXX) XXX-XX-XX.
	ErrInvalidPhone = errors.New("phone number is not in the expected format")
)
