package product

import (
	"context"
	"fmt"
	"strings"

	"ecomcart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Bool("batch", input.IsBatch()),
	)

	items := input.Items()
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if err := validateNewProduct(i, items[i]); err != nil {
			log.Warn("invalid product payload", zap.Error(err))
			return nil, err
		}
	}

	created, err := s.repo.CreateMany(ctx, items)
	if err != nil {
		log.Error("failed to create products", zap.Error(err))
		return nil, err
	}

	msg := "Product created successfully"
	if input.IsBatch() {
		msg = fmt.Sprintf("%d products added successfully", len(created))
	}

	log.Info("products created", zap.Int("count", len(created)))
	return &CreateResult{
		Products: created,
		Batch:    input.IsBatch(),
		Message:  msg,
	}, nil
}

func validateNewProduct(i int, p NewProduct) error {
	switch {
	case p.Name == "":
		return invalidProduct(i, "name is required")
	case p.Price.IsNegative():
		return invalidProduct(i, "price cannot be negative")
	case p.Stock < 0:
		return invalidProduct(i, "stock cannot be negative")
	}
	return nil
}
