package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"ecomcart-be/internal/logger"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

type requestMetaKey struct{}

// requestMeta is filled in by inner handlers so the access log can see
// who made the request.
type requestMeta struct {
	userID string
}

func setRequestUser(ctx context.Context, userID string) {
	if m, ok := ctx.Value(requestMetaKey{}).(*requestMeta); ok {
		m.userID = userID
	}
}

// LoggingMiddleware writes one access log line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		meta := &requestMeta{}
		ctx := context.WithValue(r.Context(), requestMetaKey{}, meta)

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", clientIP(r)),
		}
		if meta.userID != "" {
			fields = append(fields, zap.String("user_id", meta.userID))
		}

		log := logger.FromCtx(r.Context())
		switch {
		case rec.statusCode >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case rec.statusCode >= http.StatusBadRequest:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
