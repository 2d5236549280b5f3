package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecomcart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	ListItems(ctx context.Context, cartID string) ([]Item, error)
	FindItem(ctx context.Context, cartID, itemID string) (*Item, error)
	ItemQuantity(ctx context.Context, cartID, productID string) (int, error)
	AddQuantity(ctx context.Context, cartID, productID string, quantity int) (bool, error)
	SetQuantity(ctx context.Context, cartID, itemID string, quantity int) (bool, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemSelect = `
	SELECT ci.id, ci.quantity,
		p.id, p.name, p.description, p.price, p.image, p.category, p.stock, p.created_at, p.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (Item, error) {
	var it Item
	err := s.Scan(
		&it.ID,
		&it.Quantity,
		&it.Product.ID,
		&it.Product.Name,
		&it.Product.Description,
		&it.Product.Price,
		&it.Product.Image,
		&it.Product.Category,
		&it.Product.Stock,
		&it.Product.CreatedAt,
		&it.Product.UpdatedAt,
	)
	return it, err
}

// GetOrCreate never creates a second cart for the same user, even when
// two first requests arrive together.
func (r *repository) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrCreate"),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		log.Error("failed to insert cart", zap.Error(err))
		return nil, err
	}

	c, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cart for user %s missing after insert", userID)
	}
	return c, nil
}

// FindByUser returns nil, nil when the user has no cart yet.
func (r *repository) FindByUser(ctx context.Context, userID string) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find cart",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListItems(ctx context.Context, cartID string) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListItems"),
		zap.String("cart_id", cartID),
	)

	rows, err := r.db.QueryContext(ctx, itemSelect+`
	WHERE ci.cart_id = $1
	ORDER BY ci.created_at, ci.id`, cartID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// FindItem returns nil, nil when the cart has no such line.
func (r *repository) FindItem(ctx context.Context, cartID, itemID string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, itemSelect+`
	WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, itemID)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find cart item",
			zap.String("layer", "repository"),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		return nil, err
	}
	return &it, nil
}

// ItemQuantity returns 0 when the product is not in the cart.
func (r *repository) ItemQuantity(ctx context.Context, cartID, productID string) (int, error) {
	var qty int
	err := r.db.QueryRowContext(ctx, `
		SELECT quantity FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return qty, err
}

// AddQuantity inserts the line or increments it in place. It reports false
// when the resulting quantity would exceed the product's stock.
func (r *repository) AddQuantity(ctx context.Context, cartID, productID string, quantity int) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddQuantity"),
		zap.String("cart_id", cartID),
		zap.String("product_id", productID),
	)

	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT $1, p.id, $3
		FROM products p
		WHERE p.id = $2 AND p.stock >= $3
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()
		WHERE (SELECT stock FROM products WHERE id = EXCLUDED.product_id) >= cart_items.quantity + EXCLUDED.quantity
		RETURNING id
	`, cartID, productID, quantity).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("stock guard rejected add")
		return false, nil
	}
	if err != nil {
		log.Error("upsert failed", zap.Error(err))
		return false, err
	}

	log.Info("cart item saved", zap.String("item_id", id))
	return true, nil
}

// SetQuantity overwrites a line's quantity if stock allows it. It reports
// false when no row was changed.
func (r *repository) SetQuantity(ctx context.Context, cartID, itemID string, quantity int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items ci
		SET quantity = $3, updated_at = NOW()
		FROM products p
		WHERE ci.id = $2 AND ci.cart_id = $1
			AND p.id = ci.product_id AND p.stock >= $3
	`, cartID, itemID, quantity)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update cart item",
			zap.String("layer", "repository"),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND id = $2
	`, cartID, itemID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart item",
			zap.String("layer", "repository"),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) Clear(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.String("layer", "repository"),
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
	}
	return err
}
