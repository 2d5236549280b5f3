package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecomcart-be/internal/auth"
	"ecomcart-be/internal/cart"
	"ecomcart-be/internal/config"
	"ecomcart-be/internal/db"
	"ecomcart-be/internal/handler"
	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/metrics"
	"ecomcart-be/internal/middleware"
	"ecomcart-be/internal/order"
	"ecomcart-be/internal/product"
	"ecomcart-be/internal/transport"
	"ecomcart-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// swapped in tests
var (
	initDBFunc      = db.InitDB
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}
	transport.SetDiagnostics(!cfg.IsProduction())

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(newServer(cfg, database, limiter), cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.L().Info("server starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, srv)
}

// newServer wires repositories and services into the API router.
func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	checkoutMetrics := metrics.NewCheckout()
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, checkoutMetrics)

	return handler.NewRouter(handler.Services{
		Products: productSvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Users:    userSvc,
		Metrics:  checkoutMetrics,
		Limiter:  limiter,
	})
}

// setupRouter wraps the API with the middleware every request passes
// through. CORS sits outside the router so preflight requests never hit
// method matching.
func setupRouter(api http.Handler, cfg *config.Config) http.Handler {
	h := middleware.CORS(cfg.CORSOrigin)(api)
	h = middleware.LoggingMiddleware(h)
	return logger.RequestIDMiddleware(h)
}

// serve runs srv until ctx is cancelled, then drains open requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
