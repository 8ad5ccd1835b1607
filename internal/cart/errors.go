package cart

import "errors"

var (
	ErrLineNotFound = errors.New("cart: line not found")
	ErrInvalidInput = errors.New("cart: invalid input")
	ErrNotOwner     = errors.New("cart: line belongs to another user")
)
