package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/user"
	"ecomcart-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	t.Run("Valid token", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, "good-token").
			Return(&user.User{ID: "u-1", Name: "Jane", Email: "jane@example.com", Role: user.RoleUser, IsActive: true}, nil)

		var got utils.Identity
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = utils.GetIdentity(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		Authenticate(resolver)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.False(t, got.IsAdmin())
	})

	t.Run("Placeholder token", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, "").Return(nil, user.ErrNoToken)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer undefined")
		w := httptest.NewRecorder()

		Authenticate(resolver)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authorized. No token provided. Please login.", messageOf(t, w))
	})

	t.Run("Expired token", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, "old").Return(nil, user.ErrTokenExpired)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer old")
		w := httptest.NewRecorder()

		Authenticate(resolver)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token expired. Please login again.", messageOf(t, w))
	})

	t.Run("Deactivated user", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, "tok").Return(nil, user.ErrUserInactive)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		Authenticate(resolver)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("Admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
		req = req.WithContext(utils.SetIdentity(req.Context(), utils.Identity{UserID: "u-1", Role: utils.RoleAdmin}))
		w := httptest.NewRecorder()

		RequireAdmin(okHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("User is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
		req = req.WithContext(utils.SetIdentity(req.Context(), utils.Identity{UserID: "u-1", Role: utils.RoleUser}))
		w := httptest.NewRecorder()

		RequireAdmin(okHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Not authorized as admin", messageOf(t, w))
	})

	t.Run("Anonymous is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCors(t *testing.T) {
	handler := CORS("http://localhost:3000")(okHandler())

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("Strict tier on login", func(t *testing.T) {
		handler := NewRateLimiter().Middleware(okHandler())

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[burstStrict-1])
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Tiers and callers are separate", func(t *testing.T) {
		handler := NewRateLimiter().Middleware(okHandler())

		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		general := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		general.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, general)
		assert.Equal(t, http.StatusOK, w.Code)

		other := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
		other.RemoteAddr = "10.0.0.3:1234"
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, other)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Idle visitors are evicted", func(t *testing.T) {
		l := NewRateLimiter()
		now := time.Now()
		l.now = func() time.Time { return now }

		l.get("ip:1:general", limitGeneral, burstGeneral)
		now = now.Add(visitorIdleTTL + time.Second)
		l.get("ip:2:general", limitGeneral, burstGeneral)

		assert.Equal(t, 1, l.evict())
		assert.Len(t, l.visitors, 1)
	})

	t.Run("Run stops with context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			NewRateLimiter().Run(ctx, time.Millisecond)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer logger.Replace(zap.New(core))()

	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, "tok").Return(&user.User{ID: "u-7", Role: user.RoleUser}, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := logger.RequestIDMiddleware(LoggingMiddleware(Authenticate(resolver)(next)))

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set(logger.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(logger.RequestIDHeader))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/checkout", fields["path"])
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
	assert.Equal(t, "u-7", fields["user_id"])
	assert.Equal(t, "req-42", fields["request_id"])
}
