package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// defaultCategories are inserted into an empty development database so the
// listing and filter UI has something to show. Icons are lucide icon names.
var defaultCategories = []struct {
	Name string
	Icon string
	Slug string
}{
	{"Restaurants", "utensils", "restaurants"},
	{"Shops", "shopping-bag", "shops"},
	{"Services", "wrench", "services"},
	{"Health & Beauty", "heart-pulse", "health-beauty"},
	{"Tailors", "scissors", "tailors"},
	{"Automotive", "car", "automotive"},
}

// Seed populates the database with initial development data: the default
// category set and a demo user. It is a no-op if data already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, c := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, icon, slug) VALUES ($1, $2, $3)
		`, c.Name, c.Icon, c.Slug)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.Slug, err)
		}
	}

	// Demo account for local development.
	hash, err := bcrypt.GenerateFromPassword([]byte("localspot"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`, "demo@localspot.local", string(hash), "Demo", "User")
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(defaultCategories),
		"demo_user", "demo@localspot.local",
	)

	return nil
}
