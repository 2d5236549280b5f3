package order

import "ecomcart-be/internal/apperr"

var (
	ErrEmptyCart     = apperr.New(apperr.KindEmptyCart, "Cart is empty")
	ErrOrderNotFound = apperr.NotFound("Order not found")
	ErrForbidden     = apperr.Forbidden("Not authorized to view this order")
	ErrNoCustomer    = apperr.Unauthenticated("Not authorized. No token provided. Please login.")
)

const (
	orderNumberConstraint  = "orders_order_number_key"
	maxOrderNumberAttempts = 3
)
