// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"localspot/internal/database"
	"localspot/internal/middleware"
	"localspot/internal/models"
	"localspot/internal/session"
	"localspot/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "localspot")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "localspot")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	UserStore     *store.UserStore
	CategoryStore *store.CategoryStore
	BusinessStore *store.BusinessStore
	ReviewStore   *store.ReviewStore
	Auth          *Auth
	Categories    *Categories
	Businesses    *Businesses
	Reviews       *Reviews
}

// newTestEnv creates a complete test environment with all handler dependencies.
// S3 storage stays nil, so image uploads respond 503 in tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	businessStore := store.NewBusinessStore(db)
	reviewStore := store.NewReviewStore(db)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		UserStore:     userStore,
		CategoryStore: categoryStore,
		BusinessStore: businessStore,
		ReviewStore:   reviewStore,
		Auth:          NewAuth(sessions, userStore),
		Categories:    NewCategories(categoryStore),
		Businesses:    NewBusinesses(businessStore, nil),
		Reviews:       NewReviews(reviewStore),
	}
}

// testSession creates session data for an authenticated test user.
func testSession(userID uuid.UUID, email string) *session.Data {
	return &session.Data{
		UserID:    userID,
		Email:     email,
		TwoFADone: true,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both a chi URL param and a session.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// testUser creates a user directly through the store, registering cleanup.
func testUser(t *testing.T, env *testEnv, email string) *models.User {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE email = $1", email) })
	u, err := env.UserStore.Create(email, "handler-test-pass", nil, nil)
	if err != nil {
		t.Fatalf("test user %s: %v", email, err)
	}
	return u
}

// testCategory creates a category, registering cleanup.
func testCategory(t *testing.T, env *testEnv, name, slug string) *models.Category {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE slug = $1", slug) })
	c, err := env.CategoryStore.Create(&models.Category{Name: name, Icon: "map-pin", Slug: slug})
	if err != nil {
		t.Fatalf("test category %s: %v", slug, err)
	}
	return c
}

// testBusiness creates a business owned by the given user, registering cleanup.
// Reviews cascade when the row is deleted.
func testBusiness(t *testing.T, env *testEnv, name string, categoryID uuid.UUID, ownerID *uuid.UUID) *models.Business {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM businesses WHERE name = $1", name) })
	b, err := env.BusinessStore.Create(&models.Business{
		Name: name, Address: "1 Test St", CategoryID: categoryID, OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("test business %s: %v", name, err)
	}
	return b
}
