// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCategoryCreateGeneratesSlug(t *testing.T) {
	env := newTestEnv(t)

	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE slug = $1", "handler-pet-grooming") })

	body := `{"name":"Handler Pet Grooming","icon":"dog"}`
	req := httptest.NewRequest("POST", "/api/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()

	env.Categories.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created["slug"] != "handler-pet-grooming" {
		t.Errorf("slug: got %v, want handler-pet-grooming", created["slug"])
	}
}

func TestCategoryCreateDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)

	testCategory(t, env, "Handler Dupe Cat", "handler-dupe-cat")

	body := `{"name":"Another Name","icon":"copy","slug":"handler-dupe-cat"}`
	req := httptest.NewRequest("POST", "/api/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()

	env.Categories.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "slug") {
		t.Errorf("expected slug field error, got %s", rec.Body.String())
	}
}

func TestCategoryGetBySlug(t *testing.T) {
	env := newTestEnv(t)

	cat := testCategory(t, env, "Handler Slug Cat", "handler-slug-cat")

	req := httptest.NewRequest("GET", "/api/categories/handler-slug-cat", nil)
	req = withChiURLParam(req, "slug", "handler-slug-cat")
	rec := httptest.NewRecorder()

	env.Categories.GetBySlug(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got map[string]any
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["id"] != cat.ID.String() {
		t.Errorf("id: got %v, want %s", got["id"], cat.ID)
	}

	// Unknown slug 404s.
	req = httptest.NewRequest("GET", "/api/categories/no-such-slug-zzz", nil)
	req = withChiURLParam(req, "slug", "no-such-slug-zzz")
	rec = httptest.NewRecorder()
	env.Categories.GetBySlug(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug: got %d, want 404", rec.Code)
	}
}

func TestCategoryList(t *testing.T) {
	env := newTestEnv(t)

	testCategory(t, env, "Handler List Cat", "handler-list-cat")

	req := httptest.NewRequest("GET", "/api/categories", nil)
	rec := httptest.NewRecorder()

	env.Categories.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(items) == 0 {
		t.Error("expected at least one category")
	}
}
