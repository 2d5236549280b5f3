package handler

import (
	"net/http"

	"ecomcart-be/internal/transport"
	"ecomcart-be/internal/user"
)

type AuthHandler struct {
	svc user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// authPayload flattens the user next to its token.
type authPayload struct {
	*user.User
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input user.RegisterInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), input)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusCreated, "User registered successfully", authPayload{res.User, res.Token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), input)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Login successful", authPayload{res.User, res.Token})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	u, err := h.svc.Profile(r.Context(), id.UserID)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.OK(w, u)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	var input user.UpdateProfileInput
	if err := transport.Decode(r, &input); err != nil {
		transport.Error(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), id.UserID, input)
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.Message(w, http.StatusOK, "Profile updated successfully", u)
}

func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		transport.Error(w, r, err)
		return
	}
	transport.List(w, users, len(users))
}
