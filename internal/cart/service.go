package cart

import (
	"context"

	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every method returns the
// full cart as it stands after the change.
type Service interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, input AddItemInput) (*Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error)
	Clear(ctx context.Context, userID string) (*Cart, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, c)
}

func (s *service) AddItem(ctx context.Context, userID string, input AddItemInput) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", input.ProductID),
	)

	if input.ProductID == "" || input.Quantity == nil || *input.Quantity == 0 {
		return nil, ErrMissingItemFields
	}
	qty := *input.Quantity
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ItemQuantity(ctx, c.ID, p.ID)
	if err != nil {
		return nil, err
	}
	// compared without summing so a huge quantity cannot overflow
	if qty > p.Stock || existing > p.Stock-qty {
		log.Info("insufficient stock",
			zap.Int("stock", p.Stock),
			zap.Int("in_cart", existing),
			zap.Int("requested", qty),
		)
		return nil, product.InsufficientStock(p.Stock)
	}

	ok, err := s.repo.AddQuantity(ctx, c.ID, p.ID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		// stock or the line changed since the check above
		return nil, s.insufficient(ctx, p)
	}

	log.Info("item added to cart", zap.Int("quantity", qty))
	return s.expand(ctx, c)
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if _, err := uuid.Parse(itemID); err != nil {
		return nil, ErrItemNotFound
	}
	item, err := s.repo.FindItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Product.Stock < quantity {
		return nil, product.InsufficientStock(item.Product.Stock)
	}

	ok, err := s.repo.SetQuantity(ctx, c.ID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		item, err = s.repo.FindItem(ctx, c.ID, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
		return nil, product.InsufficientStock(item.Product.Stock)
	}

	return s.expand(ctx, c)
}

// RemoveItem treats an unknown item id as already removed.
func (s *service) RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if _, err := uuid.Parse(itemID); err == nil {
		if err := s.repo.RemoveItem(ctx, c.ID, itemID); err != nil {
			return nil, err
		}
	}

	return s.expand(ctx, c)
}

func (s *service) Clear(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := s.repo.Clear(ctx, c.ID); err != nil {
		return nil, err
	}

	c.Items = []Item{}
	c.Total = computeTotal(c.Items)
	return c, nil
}

func (s *service) findProduct(ctx context.Context, id string) (*product.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, product.ErrProductNotFound
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

// insufficient reloads the product so the error carries current stock.
func (s *service) insufficient(ctx context.Context, p *product.Product) error {
	fresh, err := s.productRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if fresh == nil {
		return product.ErrProductNotFound
	}
	return product.InsufficientStock(fresh.Stock)
}

func (s *service) expand(ctx context.Context, c *Cart) (*Cart, error) {
	items, err := s.repo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	c.Total = computeTotal(items)
	return c, nil
}
