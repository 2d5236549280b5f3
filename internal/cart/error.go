package cart

import "ecomcart-be/internal/apperr"

var (
	ErrMissingItemFields = apperr.Validation("Please provide productId and quantity")
	ErrInvalidQuantity   = apperr.Validation("Quantity must be at least 1")

	ErrCartNotFound = apperr.NotFound("Cart not found")
	ErrItemNotFound = apperr.NotFound("Item not found in cart")
)
