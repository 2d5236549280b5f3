package handler

import (
	"net/http"

	"ecomcart-be/internal/order"
	"ecomcart-be/internal/transport"

	"github.com/gorilla/mux"
)

type CheckoutHandler struct {
	svc order.Service
}

func NewCheckoutHandler(svc order.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Checkout ignores the request body. Customer details come from the token.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	receipt, err := h.svc.Checkout(r.Context(), order.Customer{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
	})
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusCreated, "Order placed successfully", receipt)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	o, err := h.svc.GetByID(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.OK(w, o)
}

func (h *CheckoutHandler) Mine(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	orders, err := h.svc.ListByUser(r.Context(), id.UserID)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.List(w, orders, len(orders))
}

func (h *CheckoutHandler) All(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.List(w, orders, len(orders))
}
