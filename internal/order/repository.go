package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ecomcart-be/internal/db"
	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/product"
	"ecomcart-be/internal/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Checkout(ctx context.Context, customer Customer) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type repository struct {
	db             *sql.DB
	newOrderNumber func() string
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn, newOrderNumber: utils.GenerateOrderNumber}
}

const orderColumns = `id, user_id, order_number, customer_name, customer_email, total, status, created_at, updated_at`

// Checkout turns the customer's cart into an order in one transaction.
// Stock is decremented with a guarded update, so a concurrent checkout
// that drained the product fails instead of overselling.
func (r *repository) Checkout(ctx context.Context, customer Customer) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Checkout"),
	)

	var placed *Order
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		cartID, lines, err := loadLines(ctx, tx, customer.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items := make([]Item, 0, len(lines))
		for _, l := range lines {
			if !l.Found {
				return product.ErrProductNotFound
			}
			if l.Stock < l.Quantity {
				return product.InsufficientStock(l.Stock)
			}
			items = append(items, Item{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.Price,
				Quantity:  l.Quantity,
			})
		}

		for _, it := range items {
			if err := decrementStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		o := &Order{
			UserID:        customer.UserID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Items:         items,
			Total:         totalOf(items),
			Status:        StatusCompleted,
		}
		if err := r.insertOrder(ctx, tx, o); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, o.ID, items); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		placed = o
		return nil
	})
	if err != nil {
		log.Warn("checkout rolled back", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", placed.ID),
		zap.String("order_number", placed.OrderNumber),
		zap.Int("items", len(placed.Items)),
	)
	return placed, nil
}

// loadLines reads the cart lines with their products. A user without a
// cart has no lines.
func loadLines(ctx context.Context, tx *sql.Tx, userID string) (string, []line, error) {
	var cartID string
	err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("load cart: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.id, p.name, p.price, p.stock
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`, cartID)
	if err != nil {
		return "", nil, fmt.Errorf("load cart lines: %w", err)
	}
	defer rows.Close()

	var lines []line
	for rows.Next() {
		var (
			l     line
			pid   sql.NullString
			name  sql.NullString
			price decimal.NullDecimal
			stock sql.NullInt64
		)
		if err := rows.Scan(&l.ProductID, &l.Quantity, &pid, &name, &price, &stock); err != nil {
			return "", nil, err
		}
		l.Found = pid.Valid
		l.Name = name.String
		l.Price = price.Decimal
		l.Stock = int(stock.Int64)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}
	return cartID, lines, nil
}

func decrementStock(ctx context.Context, tx *sql.Tx, productID string, quantity int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, quantity, productID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var stock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return product.ErrProductNotFound
	}
	if err != nil {
		return err
	}
	return product.InsufficientStock(stock)
}

// insertOrder retries with a fresh order number when the generated one
// is already taken. The savepoint keeps the transaction usable after
// the failed insert.
func (r *repository) insertOrder(ctx context.Context, tx *sql.Tx, o *Order) error {
	for attempt := 1; ; attempt++ {
		if _, err := tx.ExecContext(ctx, `SAVEPOINT order_number`); err != nil {
			return err
		}

		o.OrderNumber = r.newOrderNumber()
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, order_number, customer_name, customer_email, total, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, o.UserID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.Total, o.Status).
			Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err == nil {
			return nil
		}

		if !db.IsUniqueViolation(err, orderNumberConstraint) || attempt >= maxOrderNumberAttempts {
			return fmt.Errorf("insert order: %w", err)
		}

		logger.FromCtx(ctx).Warn("order number collision, retrying",
			zap.String("order_number", o.OrderNumber),
			zap.Int("attempt", attempt),
		)
		if _, err := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT order_number`); err != nil {
			return err
		}
	}
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID string, items []Item) error {
	const cols = 6
	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*cols)
	for i, it := range items {
		base := i * cols
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, orderID, i, it.ProductID, it.Name, it.Price, it.Quantity)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, position, product_id, name, price, quantity)
		VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no order has the id.
func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, "ListAll", `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id`)
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, "ListByUser",
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
}

func (r *repository) list(ctx context.Context, method, query string, args ...any) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items of every order with a single query.
func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []Item{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderNumber,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
