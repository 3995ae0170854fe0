// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"localspot/internal/models"
)

const reviewColumns = `id, business_id, user_id, rating, comment, created_at, updated_at`

// scanReview scans a row into a Review struct.
func scanReview(scanner interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	err := scanner.Scan(
		&r.ID, &r.BusinessID, &r.UserID, &r.Rating, &r.Comment,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so review listing
// can run standalone or inside the detail snapshot transaction.
type rowQuerier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// listReviewsWithUsers fetches all reviews for a business joined to their
// authors, most recent first.
func listReviewsWithUsers(q rowQuerier, businessID uuid.UUID) ([]models.ReviewWithUser, error) {
	rows, err := q.Query(`
		SELECT r.id, r.business_id, r.user_id, r.rating, r.comment,
		       r.created_at, r.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.profile_image_url,
		       u.created_at, u.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.business_id = $1
		ORDER BY r.created_at DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	items := []models.ReviewWithUser{}
	for rows.Next() {
		var rv models.ReviewWithUser
		if err := rows.Scan(
			&rv.ID, &rv.BusinessID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UpdatedAt,
			&rv.User.ID, &rv.User.Email, &rv.User.FirstName, &rv.User.LastName,
			&rv.User.ProfileImageURL, &rv.User.CreatedAt, &rv.User.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, rv)
	}
	return items, rows.Err()
}

// ReviewStore handles all review-related database operations.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// ListByBusiness returns all reviews for a business with author info,
// most recent first. Works for soft-deleted businesses too — their reviews
// remain retrievable.
func (s *ReviewStore) ListByBusiness(businessID uuid.UUID) ([]models.ReviewWithUser, error) {
	return listReviewsWithUsers(s.db, businessID)
}

// FindByID retrieves a review by ID. Returns nil if not found.
func (s *ReviewStore) FindByID(id uuid.UUID) (*models.Review, error) {
	row := s.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return r, nil
}

// FindByBusinessAndUser retrieves the review a user left on a business.
// Returns nil if the user has not reviewed it.
func (s *ReviewStore) FindByBusinessAndUser(businessID, userID uuid.UUID) (*models.Review, error) {
	row := s.db.QueryRow(`
		SELECT `+reviewColumns+` FROM reviews
		WHERE business_id = $1 AND user_id = $2
	`, businessID, userID)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by business and user: %w", err)
	}
	return r, nil
}

// Create inserts a new review and returns it. Returns ErrDuplicateReview
// if the user already reviewed this business, and ErrUnknownBusiness if
// the business does not exist.
func (s *ReviewStore) Create(r *models.Review) (*models.Review, error) {
	row := s.db.QueryRow(`
		INSERT INTO reviews (business_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reviewColumns,
		r.BusinessID, r.UserID, r.Rating, r.Comment,
	)
	result, err := scanReview(row)
	if isPgError(err, pgUniqueViolation) {
		return nil, ErrDuplicateReview
	}
	if isPgError(err, pgForeignKeyViolation) {
		return nil, fmt.Errorf("create review: %w: %w", ErrUnknownBusiness, err)
	}
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return result, nil
}

// Update writes the mutable review fields and returns the updated row.
// Returns nil if the review does not exist.
func (s *ReviewStore) Update(r *models.Review) (*models.Review, error) {
	row := s.db.QueryRow(`
		UPDATE reviews SET rating = $1, comment = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+reviewColumns,
		r.Rating, r.Comment, r.ID,
	)
	result, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return result, nil
}

// Delete physically removes a review. Returns false if no review matched.
func (s *ReviewStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	return n > 0, nil
}
