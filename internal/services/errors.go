package services

import "errors"

// Business-rule failures. Handlers map these to client errors with
// errors.Is; anything else coming out of the services is an infrastructure
// failure and maps to a server error.
var (
	ErrUnknownSKU        = errors.New("unknown sku")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrEmptyPatch        = errors.New("nothing to update")
)

// IsBusinessError reports whether err is a rejected operation rather than an
// infrastructure fault.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrUnknownSKU) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrEmptyPatch)
}
