package handler

import (
	"net/http"

	"ecomcart-be/internal/user"
	"ecomcart-be/internal/utils"
)

// caller returns the identity set by the auth middleware. Routes behind
// Authenticate always have one.
func caller(r *http.Request) (utils.Identity, error) {
	id, ok := utils.GetIdentity(r.Context())
	if !ok {
		return utils.Identity{}, user.ErrNoToken
	}
	return id, nil
}
