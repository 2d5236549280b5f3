package handler

import (
	"net/http"
	"time"

	"ecomcart-be/internal/metrics"
	"ecomcart-be/internal/transport"
)

type healthStatus struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	transport.Message(w, http.StatusOK, "Server is running", healthStatus{Status: "ok", Time: time.Now().UTC()})
}

// Metrics reports checkout counters.
func Metrics(m *metrics.Checkout) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transport.OK(w, m.Snapshot())
	}
}
