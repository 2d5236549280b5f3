package handler

import (
	"net/http"

	"ecomcart-be/internal/cart"
	"ecomcart-be/internal/transport"

	"github.com/gorilla/mux"
)

// CartHandler answers every mutation with the whole cart so clients can
// replace their local copy.
type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id.UserID)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.OK(w, c)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	var input cart.AddItemInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	c, err := h.svc.AddItem(r.Context(), id.UserID, input)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Item added to cart", c)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	var input cart.UpdateItemInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	c, err := h.svc.UpdateItem(r.Context(), id.UserID, mux.Vars(r)["itemId"], input.Quantity)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Cart updated", c)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	c, err := h.svc.RemoveItem(r.Context(), id.UserID, mux.Vars(r)["itemId"])
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Item removed from cart", c)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	c, err := h.svc.Clear(r.Context(), id.UserID)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Cart cleared", c)
}
