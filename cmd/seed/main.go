// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
	"stocktrack/internal/domain/auth"
	"stocktrack/internal/infrastructure/storage/postgres"
	"stocktrack/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}
	log.Info("schema ensured")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoItems(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo stock items", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stocktrack.local"
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "ChangeMe123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, 'admin', $2, $3, $4, $5, $5)
	`, userID, adminEmail, string(passwordHash), string(auth.RoleAdministrator), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoItems(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	demo := []struct {
		name      string
		category  string
		price     string
		onHand    int
		threshold int
	}{
		{"Espresso Beans 1kg", "Coffee", "18.50", 40, 10},
		{"Oat Milk 1L", "Dairy Alternatives", "2.90", 120, 24},
		{"Paper Cups 12oz (50pk)", "Supplies", "6.75", 30, 8},
		{"Chocolate Croissant", "Bakery", "3.20", 25, 12},
		{"Cold Brew Concentrate", "Coffee", "11.00", 15, 5},
	}

	now := time.Now()
	for _, d := range demo {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM stock_items WHERE name = $1)`,
			d.name,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check item %q: %w", d.name, err)
		}
		if exists {
			continue
		}

		price, err := types.NewMoneyFromString(d.price)
		if err != nil {
			return fmt.Errorf("parse price for %q: %w", d.name, err)
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO stock_items (id, name, category, unit_price, quantity_on_hand, reorder_threshold, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		`, id.New(), d.name, d.category, price, d.onHand, d.threshold, now)
		if err != nil {
			return fmt.Errorf("insert item %q: %w", d.name, err)
		}
	}

	log.Infow("demo stock items seeded", "count", len(demo))
	return nil
}
