package handler

import (
	"net/http"

	"ecomcart-be/internal/cart"
	"ecomcart-be/internal/metrics"
	"ecomcart-be/internal/middleware"
	"ecomcart-be/internal/order"
	"ecomcart-be/internal/product"
	"ecomcart-be/internal/transport"
	"ecomcart-be/internal/user"

	"github.com/gorilla/mux"
)

// Services holds what the routes call. Limiter is optional; without it no
// route is rate limited.
type Services struct {
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
	Users    user.Service
	Metrics  *metrics.Checkout
	Limiter  *middleware.RateLimiter
}

// NewRouter registers every API route. Request id, logging and CORS wrap
// the router in cmd/server. Rate limiting runs per route, after
// Authenticate, so signed-in callers are keyed by user id.
func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(transport.NotFound)

	limit := func(h http.Handler) http.Handler { return h }
	if s.Limiter != nil {
		limit = s.Limiter.Middleware
	}

	protect := middleware.Authenticate(s.Users)
	public := func(h http.HandlerFunc) http.Handler { return limit(h) }
	authed := func(h http.HandlerFunc) http.Handler { return protect(limit(h)) }
	admin := func(h http.HandlerFunc) http.Handler { return protect(limit(middleware.RequireAdmin(h))) }

	r.Handle("/health", public(Health)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	products := NewProductHandler(s.Products)
	api.Handle("/products", public(products.List)).Methods(http.MethodGet)
	api.Handle("/products/{id}", public(products.Get)).Methods(http.MethodGet)
	api.Handle("/products", admin(products.Create)).Methods(http.MethodPost)

	carts := NewCartHandler(s.Carts)
	api.Handle("/cart", authed(carts.Get)).Methods(http.MethodGet)
	api.Handle("/cart", authed(carts.Add)).Methods(http.MethodPost)
	api.Handle("/cart", authed(carts.Clear)).Methods(http.MethodDelete)
	api.Handle("/cart/{itemId}", authed(carts.Update)).Methods(http.MethodPut)
	api.Handle("/cart/{itemId}", authed(carts.Remove)).Methods(http.MethodDelete)

	checkout := NewCheckoutHandler(s.Orders)
	api.Handle("/checkout", authed(checkout.Checkout)).Methods(http.MethodPost)
	// before {id}, or "myorders" would be taken as an order id
	api.Handle("/checkout/myorders", authed(checkout.Mine)).Methods(http.MethodGet)
	api.Handle("/checkout", admin(checkout.All)).Methods(http.MethodGet)
	api.Handle("/checkout/{id}", authed(checkout.Get)).Methods(http.MethodGet)

	auth := NewAuthHandler(s.Users)
	api.Handle("/auth/register", public(auth.Register)).Methods(http.MethodPost)
	api.Handle("/auth/login", public(auth.Login)).Methods(http.MethodPost)
	api.Handle("/auth/profile", authed(auth.Profile)).Methods(http.MethodGet)
	api.Handle("/auth/profile", authed(auth.UpdateProfile)).Methods(http.MethodPut)
	api.Handle("/auth/users", admin(auth.Users)).Methods(http.MethodGet)

	api.Handle("/metrics", admin(Metrics(s.Metrics))).Methods(http.MethodGet)

	return r
}
