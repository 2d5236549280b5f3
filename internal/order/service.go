package order

import (
	"context"

	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, customer Customer) (*Receipt, error)
	GetByID(ctx context.Context, callerID, id string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Checkout
}

func NewService(repo Repository, m *metrics.Checkout) Service {
	return &service{repo: repo, metrics: m}
}

func (s *service) Checkout(ctx context.Context, customer Customer) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if customer.UserID == "" {
		return nil, ErrNoCustomer
	}

	timer := metrics.StartTimer()
	o, err := s.repo.Checkout(ctx, customer)
	if err != nil {
		s.metrics.Observe(timer.Duration(), 0, err)
		return nil, err
	}

	units := 0
	for _, it := range o.Items {
		units += it.Quantity
	}
	s.metrics.Observe(timer.Duration(), units, nil)

	log.Info("checkout completed",
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o.Receipt(), nil
}

// GetByID only returns orders owned by the caller. Admins get no
// exemption here.
func (s *service) GetByID(ctx context.Context, callerID, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.UserID != callerID {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.String("layer", "service"),
			zap.String("order_id", id),
		)
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
