package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecomcart-be/internal/logger"

	"go.uber.org/zap"
)

const productColumns = `id, name, description, price, image, category, stock, created_at, updated_at`

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	CreateMany(ctx context.Context, items []NewProduct) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (Product, error) {
	var p Product
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Category,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}

// GetByID returns nil, nil when no product has the id.
func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("layer", "repository"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

// CreateMany inserts every item in one statement, so the batch succeeds
// or fails as a whole.
func (r *repository) CreateMany(ctx context.Context, items []NewProduct) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateMany"),
		zap.Int("count", len(items)),
	)

	if len(items) == 0 {
		return []Product{}, nil
	}

	const cols = 6
	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*cols)
	for i, it := range items {
		base := i * cols
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, it.Name, it.Description, it.Price, it.Image, it.Category, it.Stock)
	}

	query := `
	INSERT INTO products (name, description, price, image, category, stock)
	VALUES ` + strings.Join(values, ", ") + `
	RETURNING ` + productColumns

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	created := make([]Product, 0, len(items))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		created = append(created, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Info("products created")
	return created, nil
}
