// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"localspot/internal/middleware"
	"localspot/internal/models"
	"localspot/internal/storage"
	"localspot/internal/store"
)

// maxImageSize caps business image uploads at 5 MiB.
const maxImageSize = 5 << 20

// Businesses groups business HTTP handlers.
type Businesses struct {
	businessStore *store.BusinessStore
	storageClient *storage.Client // nil if S3 is not configured
}

// NewBusinesses creates a new Businesses handler group.
// storageClient may be nil, disabling image uploads.
func NewBusinesses(businessStore *store.BusinessStore, storageClient *storage.Client) *Businesses {
	return &Businesses{
		businessStore: businessStore,
		storageClient: storageClient,
	}
}

// List returns business summaries matching the query parameters:
// categoryId, search, limit, offset, sortBy ∈ {newest, rating, name}.
func (h *Businesses) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListOptions{
		Search: strings.TrimSpace(q.Get("search")),
		SortBy: store.SortNewest,
	}

	errs := map[string]string{}
	if v := q.Get("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["categoryId"] = "Category id must be a valid UUID."
		} else {
			opts.CategoryID = &id
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs["limit"] = "Limit must be a non-negative integer."
		} else {
			opts.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs["offset"] = "Offset must be a non-negative integer."
		} else {
			opts.Offset = n
		}
	}
	if v := q.Get("sortBy"); v != "" {
		if !store.ValidSortMode(v) {
			errs["sortBy"] = "Sort must be one of newest, rating, name."
		} else {
			opts.SortBy = store.SortMode(v)
		}
	}
	if len(errs) > 0 {
		writeValidation(w, "Invalid query parameters", errs)
		return
	}

	items, err := h.businessStore.List(opts)
	if err != nil {
		slog.Error("list businesses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch businesses")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns the full detail record for one business, including its
// category, owner, reviews, and rating aggregate.
func (h *Businesses) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}

	detail, err := h.businessStore.GetDetail(id)
	if err != nil {
		slog.Error("business detail failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch business")
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type createBusinessRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	ImageURL    *string   `json:"imageUrl"`
}

// Create inserts a new business owned by the authenticated user.
func (h *Businesses) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req createBusinessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hasCategory := req.CategoryID != uuid.Nil
	if errs := validateBusiness(req.Name, req.Address, req.Description, req.Phone, hasCategory); len(errs) > 0 {
		writeValidation(w, "Invalid business data", errs)
		return
	}

	ownerID := sess.UserID
	created, err := h.businessStore.Create(&models.Business{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     strings.TrimSpace(req.Address),
		Phone:       req.Phone,
		CategoryID:  req.CategoryID,
		OwnerID:     &ownerID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
	})
	if errors.Is(err, store.ErrUnknownCategory) {
		writeValidation(w, "Invalid business data", map[string]string{
			"categoryId": "Category does not exist.",
		})
		return
	}
	if err != nil {
		slog.Error("create business failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create business")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type updateBusinessRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	ImageURL    *string    `json:"imageUrl"`
}

// Update applies a partial update to a business. Owner-only: existence is
// checked first (404), then ownership (403).
func (h *Businesses) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedBusiness(w, r)
	if !ok {
		return
	}

	var req updateBusinessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Overlay provided fields onto the stored row.
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Address != nil {
		existing.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.CategoryID != nil {
		existing.CategoryID = *req.CategoryID
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = req.Longitude
	}
	if req.ImageURL != nil {
		existing.ImageURL = req.ImageURL
	}

	hasCategory := existing.CategoryID != uuid.Nil
	if errs := validateBusiness(existing.Name, existing.Address, existing.Description, existing.Phone, hasCategory); len(errs) > 0 {
		writeValidation(w, "Invalid business data", errs)
		return
	}

	updated, err := h.businessStore.Update(existing)
	if errors.Is(err, store.ErrUnknownCategory) {
		writeValidation(w, "Invalid business data", map[string]string{
			"categoryId": "Category does not exist.",
		})
		return
	}
	if err != nil {
		slog.Error("update business failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update business")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete soft-deletes a business. Owner-only. The row and its reviews stay
// in storage; the business just disappears from listings and detail reads.
func (h *Businesses) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedBusiness(w, r)
	if !ok {
		return
	}

	deleted, err := h.businessStore.SoftDelete(existing.ID)
	if err != nil {
		slog.Error("delete business failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete business")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}

	writeMessage(w, "Business deleted successfully")
}

// ListByUser returns the businesses owned by the given user. Callers may
// only request their own listings (403 otherwise).
func (h *Businesses) ListByUser(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil || userID != sess.UserID {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	items, err := h.businessStore.ListByOwner(userID)
	if err != nil {
		slog.Error("list user businesses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user businesses")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UploadImage accepts a multipart image for a business, stores it in S3,
// and records the public URL. Owner-only.
func (h *Businesses) UploadImage(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedBusiness(w, r)
	if !ok {
		return
	}

	if h.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeValidation(w, "Invalid image upload", map[string]string{
			"image": "An image file is required (max 5 MB).",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeValidation(w, "Invalid image upload", map[string]string{
			"image": "File must be an image.",
		})
		return
	}

	key := fmt.Sprintf("businesses/%s/%s%s", existing.ID, uuid.New(), path.Ext(header.Filename))
	if err := h.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("image upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	url := h.storageClient.FileURL(key)
	if err := h.businessStore.SetImageURL(existing.ID, url); err != nil {
		slog.Error("image url save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

// ownedBusiness loads the business from the URL and enforces the owner
// check: 404 when absent or inactive, 403 when the caller is not the
// owner. Returns (business, true) on success.
func (h *Businesses) ownedBusiness(w http.ResponseWriter, r *http.Request) (*models.Business, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return nil, false
	}

	existing, err := h.businessStore.FindByID(id)
	if err != nil {
		slog.Error("business lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch business")
		return nil, false
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return nil, false
	}
	if existing.OwnerID == nil || *existing.OwnerID != sess.UserID {
		writeError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}

	return existing, true
}
