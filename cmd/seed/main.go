package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"ecomcart-be/internal/config"
	"ecomcart-be/internal/db"
	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/product"
	"ecomcart-be/internal/user"
	"ecomcart-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type roleSetter interface {
	SetRole(ctx context.Context, email string, role user.Role) error
}

type seeder struct {
	conn     *sql.DB
	products product.Service
	users    roleSetter
}

func main() {
	reset := flag.Bool("reset", false, "delete existing products before seeding")
	admin := flag.String("admin", "", "email of a registered user to promote to admin")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	conn, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer conn.Close()

	s := &seeder{
		conn:     conn,
		products: product.NewService(product.NewRepository(conn)),
		users:    user.NewRepository(conn),
	}
	if err := s.run(context.Background(), *reset, *admin); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}
}

func (s *seeder) run(ctx context.Context, reset bool, adminEmail string) error {
	log := logger.L()

	if reset {
		res, err := s.conn.ExecContext(ctx, `DELETE FROM products`)
		if err != nil {
			return fmt.Errorf("reset products: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reset products: %w", err)
		}
		log.Info("existing products deleted", zap.Int64("count", n))
	}

	result, err := s.products.Create(ctx, product.CreateInput{Batch: catalogue()})
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	log.Info("products seeded", zap.Int("count", len(result.Products)))

	if adminEmail != "" {
		if err := s.users.SetRole(ctx, utils.NormalizeEmail(adminEmail), user.RoleAdmin); err != nil {
			return fmt.Errorf("promote %s: %w", adminEmail, err)
		}
		log.Info("user promoted to admin", zap.String("email", adminEmail))
	}
	return nil
}

func catalogue() []product.NewProduct {
	item := func(name, description, price, image, category string, stock int) product.NewProduct {
		return product.NewProduct{
			Name:        name,
			Description: description,
			Price:       decimal.RequireFromString(price),
			Image:       "https://images.unsplash.com/" + image + "?w=500",
			Category:    category,
			Stock:       stock,
		}
	}

	return []product.NewProduct{
		item("Wireless Headphones", "Premium noise-canceling wireless headphones with 30-hour battery life", "199.99", "photo-1505740420928-5e560c06d30e", "Electronics", 50),
		item("Smart Watch", "Fitness tracking smartwatch with heart rate monitor and GPS", "299.99", "photo-1523275335684-37898b6baf30", "Electronics", 75),
		item("Laptop Backpack", "Water-resistant backpack with padded laptop compartment", "49.99", "photo-1553062407-98eeb64c6a62", "Accessories", 100),
		item("Mechanical Keyboard", "RGB backlit mechanical gaming keyboard with tactile switches", "129.99", "photo-1587829741301-dc798b83add3", "Electronics", 60),
		item("Wireless Mouse", "Ergonomic wireless mouse with adjustable DPI settings", "39.99", "photo-1527864550417-7fd91fc51a46", "Electronics", 120),
		item("USB-C Hub", "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader", "59.99", "photo-1625948515291-69613efd103f", "Accessories", 80),
		item("Portable Charger", "20000mAh power bank with fast charging and dual USB ports", "34.99", "photo-1609091839311-d5365f9ff1c5", "Accessories", 150),
		item("Bluetooth Speaker", "Waterproof portable speaker with 360-degree sound", "79.99", "photo-1608043152269-423dbba4e7e1", "Electronics", 90),
		item("Phone Stand", "Adjustable aluminum phone stand for desk", "24.99", "photo-1601784551446-20c9e07cdbdb", "Accessories", 200),
		item("Webcam HD", "1080p HD webcam with built-in microphone", "69.99", "photo-1587826080692-f439cd0b70da", "Electronics", 45),
	}
}
