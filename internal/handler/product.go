package handler

import (
	"net/http"

	"ecomcart-be/internal/product"
	"ecomcart-be/internal/transport"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.List(w, products, len(products))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.OK(w, p)
}

// Create accepts one product object or an array of them.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input product.CreateInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	res, err := h.svc.Create(r.Context(), input)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	if !res.Batch {
		transport.Message(w, http.StatusCreated, res.Message, res.Products[0])
		return
	}

	count := len(res.Products)
	transport.WriteJSON(w, http.StatusCreated, transport.Envelope{
		Success: true,
		Message: res.Message,
		Count:   &count,
		Data:    res.Products,
	})
}
