// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"localspot/internal/middleware"
	"localspot/internal/models"
	"localspot/internal/store"
)

// Reviews groups review HTTP handlers.
type Reviews struct {
	reviewStore *store.ReviewStore
}

// NewReviews creates a new Reviews handler group.
func NewReviews(reviewStore *store.ReviewStore) *Reviews {
	return &Reviews{reviewStore: reviewStore}
}

// ListByBusiness returns all reviews for a business with author info,
// most recent first. Also works for soft-deleted businesses.
func (h *Reviews) ListByBusiness(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "businessId"))
	if err != nil {
		writeValidation(w, "Invalid business id", map[string]string{
			"businessId": "Business id must be a valid UUID.",
		})
		return
	}

	items, err := h.reviewStore.ListByBusiness(businessID)
	if err != nil {
		slog.Error("list reviews failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type reviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// Create inserts a review by the authenticated user. One review per user
// per business: a pre-check gives the friendly error, and the unique
// constraint catches the concurrent-submission race.
func (h *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	businessID, err := uuid.Parse(chi.URLParam(r, "businessId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := validateReview(req.Rating, req.Comment); len(errs) > 0 {
		writeValidation(w, "Invalid review data", errs)
		return
	}

	existing, err := h.reviewStore.FindByBusinessAndUser(businessID, sess.UserID)
	if err != nil {
		slog.Error("review pre-check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "You have already reviewed this business")
		return
	}

	created, err := h.reviewStore.Create(&models.Review{
		BusinessID: businessID,
		UserID:     sess.UserID,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	})
	if errors.Is(err, store.ErrDuplicateReview) {
		writeError(w, http.StatusBadRequest, "You have already reviewed this business")
		return
	}
	if errors.Is(err, store.ErrUnknownBusiness) {
		writeError(w, http.StatusNotFound, "Business not found")
		return
	}
	if err != nil {
		slog.Error("create review failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a review. Author-only.
func (h *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.authoredReview(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Rating != nil {
		existing.Rating = *req.Rating
	}
	if req.Comment != nil {
		existing.Comment = req.Comment
	}

	rating := existing.Rating
	if errs := validateReview(&rating, existing.Comment); len(errs) > 0 {
		writeValidation(w, "Invalid review data", errs)
		return
	}

	updated, err := h.reviewStore.Update(existing)
	if err != nil {
		slog.Error("update review failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete physically removes a review. Author-only.
func (h *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.authoredReview(w, r)
	if !ok {
		return
	}

	deleted, err := h.reviewStore.Delete(existing.ID)
	if err != nil {
		slog.Error("delete review failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}

	writeMessage(w, "Review deleted successfully")
}

// authoredReview loads the review from the URL and enforces the author
// check: 404 when absent, 403 when the caller is not the author.
func (h *Reviews) authoredReview(w http.ResponseWriter, r *http.Request) (*models.Review, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "reviewId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Review not found")
		return nil, false
	}

	existing, err := h.reviewStore.FindByID(id)
	if err != nil {
		slog.Error("review lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch review")
		return nil, false
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Review not found")
		return nil, false
	}
	if existing.UserID != sess.UserID {
		writeError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}

	return existing, true
}
