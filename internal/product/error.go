package product

import (
	"fmt"

	"ecomcart-be/internal/apperr"
)

var (
	ErrProductNotFound   = apperr.NotFound("Product not found")
	ErrInsufficientStock = apperr.New(apperr.KindInsufficientStock, "Insufficient stock")

	ErrEmptyBatch = apperr.Validation("Please provide at least one product")
)

// InsufficientStock reports the stock actually available. The result
// matches ErrInsufficientStock with errors.Is.
func InsufficientStock(available int) error {
	return apperr.Wrap(
		apperr.KindInsufficientStock,
		fmt.Sprintf("Insufficient stock. Only %d available.", available),
		ErrInsufficientStock,
	)
}

func invalidProduct(index int, reason string) error {
	return apperr.Validation(fmt.Sprintf("Invalid product at index %d: %s", index, reason))
}
