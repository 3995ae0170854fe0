// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"localspot/internal/models"
	"localspot/internal/slug"
	"localspot/internal/store"
)

// Categories groups category HTTP handlers.
type Categories struct {
	categoryStore *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categoryStore *store.CategoryStore) *Categories {
	return &Categories{categoryStore: categoryStore}
}

// List returns all categories, name-ascending.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetBySlug returns a single category by its unique slug.
func (h *Categories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.categoryStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("category lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Slug string `json:"slug"`
}

// Create inserts a new category. The slug is generated from the name when
// not supplied.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := validateCategory(req.Name, req.Icon, req.Slug); len(errs) > 0 {
		writeValidation(w, "Invalid category data", errs)
		return
	}

	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.Generate(req.Name)
	}

	created, err := h.categoryStore.Create(&models.Category{
		Name: strings.TrimSpace(req.Name),
		Icon: strings.TrimSpace(req.Icon),
		Slug: s,
	})
	if errors.Is(err, store.ErrSlugTaken) {
		writeValidation(w, "Invalid category data", map[string]string{
			"slug": "Slug is already in use.",
		})
		return
	}
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
