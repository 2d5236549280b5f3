package transport

import (
	"encoding/json"
	"net/http"

	"ecomcart-be/internal/apperr"
	"ecomcart-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func init() {
	// prices and totals go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrInvalidBody is returned by Decode for any body that is not valid JSON
// for the target type.
var ErrInvalidBody = apperr.Validation("Invalid request body")

var showDiagnostics = true

// SetDiagnostics controls whether error responses carry the underlying
// error text. It is disabled in production.
func SetDiagnostics(enabled bool) {
	showDiagnostics = enabled
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with a human-readable message.
func Message(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// List writes data with its element count.
func List(w http.ResponseWriter, data any, count int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Error maps err to its status code and client message. Server errors are
// logged and their detail is only exposed when diagnostics are on.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	env := Envelope{Success: false, Message: apperr.MessageOf(err)}

	if kind == apperr.KindServer {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if showDiagnostics {
			env.Error = err.Error()
		}
	}

	WriteJSON(w, kind.Status(), env)
}

// Decode reads a JSON body into dst.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrInvalidBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, ErrInvalidBody.Message, err)
	}
	return nil
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, Envelope{Success: false, Message: "Route not found"})
}
