// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"localspot/internal/models"
)

// SortMode selects the ordering of business listings.
type SortMode string

const (
	SortNewest SortMode = "newest" // creation time descending (default)
	SortRating SortMode = "rating" // average rating descending
	SortName   SortMode = "name"   // name ascending
)

// ValidSortMode reports whether s is one of the supported sort modes.
func ValidSortMode(s string) bool {
	switch SortMode(s) {
	case SortNewest, SortRating, SortName:
		return true
	}
	return false
}

// ListOptions are the filters and paging parameters for business listings.
type ListOptions struct {
	CategoryID *uuid.UUID
	Search     string // case-insensitive substring match on name
	Limit      int
	Offset     int
	SortBy     SortMode
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// businessColumns are the business table columns, qualified for joins.
const businessColumns = `b.id, b.name, b.description, b.address, b.phone,
	b.category_id, b.owner_id, b.latitude, b.longitude, b.image_url,
	b.is_verified, b.is_active, b.created_at, b.updated_at`

// BusinessStore handles all business-related database operations.
type BusinessStore struct {
	db *sql.DB
}

// NewBusinessStore creates a new BusinessStore with the given database connection.
func NewBusinessStore(db *sql.DB) *BusinessStore {
	return &BusinessStore{db: db}
}

// List returns active businesses matching the given filters, each with its
// category and derived rating aggregate. Ordering is applied in SQL before
// LIMIT/OFFSET so pages of a multi-page result are globally ordered.
func (s *BusinessStore) List(opts ListOptions) ([]models.BusinessSummary, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + businessColumns + `,
		       c.id, c.name, c.icon, c.slug, c.created_at,
		       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
		       COUNT(r.id) AS review_count
		FROM businesses b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN reviews r ON r.business_id = b.id
		WHERE b.is_active = TRUE`)

	var args []any
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		fmt.Fprintf(&sb, " AND b.category_id = $%d", len(args))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		fmt.Fprintf(&sb, " AND b.name ILIKE $%d", len(args))
	}

	sb.WriteString(" GROUP BY b.id, c.id")

	switch opts.SortBy {
	case SortRating:
		sb.WriteString(" ORDER BY average_rating DESC, b.created_at DESC")
	case SortName:
		// ICU collation keeps locale order (accents fold into their base
		// letter) independent of the database's lc_collate, and applying it
		// in SQL keeps ordering ahead of LIMIT/OFFSET.
		sb.WriteString(` ORDER BY b.name COLLATE "en-x-icu" ASC, b.created_at DESC`)
	default:
		sb.WriteString(" ORDER BY b.created_at DESC")
	}

	args = append(args, opts.Limit, opts.Offset)
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListByOwner returns all businesses owned by the given user (active or
// not), newest first, with category and rating aggregate.
func (s *BusinessStore) ListByOwner(ownerID uuid.UUID) ([]models.BusinessSummary, error) {
	rows, err := s.db.Query(`
		SELECT `+businessColumns+`,
		       c.id, c.name, c.icon, c.slug, c.created_at,
		       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
		       COUNT(r.id) AS review_count
		FROM businesses b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN reviews r ON r.business_id = b.id
		WHERE b.owner_id = $1
		GROUP BY b.id, c.id
		ORDER BY b.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list businesses by owner: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// scanSummaries drains rows of the summary shape (business + category +
// aggregate) into a slice. Always returns a non-nil slice so an empty
// filter set serializes as [] rather than null.
func scanSummaries(rows *sql.Rows) ([]models.BusinessSummary, error) {
	items := []models.BusinessSummary{}
	for rows.Next() {
		var bs models.BusinessSummary
		if err := rows.Scan(
			&bs.ID, &bs.Name, &bs.Description, &bs.Address, &bs.Phone,
			&bs.CategoryID, &bs.OwnerID, &bs.Latitude, &bs.Longitude, &bs.ImageURL,
			&bs.IsVerified, &bs.IsActive, &bs.CreatedAt, &bs.UpdatedAt,
			&bs.Category.ID, &bs.Category.Name, &bs.Category.Icon,
			&bs.Category.Slug, &bs.Category.CreatedAt,
			&bs.AverageRating, &bs.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("scan business summary: %w", err)
		}
		items = append(items, bs)
	}
	return items, rows.Err()
}

// FindByID retrieves an active business by ID. Returns nil if the business
// does not exist or is soft-deleted.
func (s *BusinessStore) FindByID(id uuid.UUID) (*models.Business, error) {
	b := &models.Business{}
	err := s.db.QueryRow(`
		SELECT `+businessColumns+`
		FROM businesses b
		WHERE b.id = $1 AND b.is_active = TRUE
	`, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Address, &b.Phone,
		&b.CategoryID, &b.OwnerID, &b.Latitude, &b.Longitude, &b.ImageURL,
		&b.IsVerified, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find business by id: %w", err)
	}
	return b, nil
}

// GetDetail returns the full composite record for a business: the business
// with category and optional owner, all reviews with their authors (newest
// first), and the rating aggregate. Both reads run inside one repeatable-read
// transaction; READ COMMITTED would take a fresh snapshot per statement, so a
// review committed between them could skew the composed record. The aggregate
// is derived from the fetched review rows rather than a third query, so count
// and average always match the list.
// Returns nil if the business does not exist or is inactive.
func (s *BusinessStore) GetDetail(id uuid.UUID) (*models.BusinessDetail, error) {
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("begin detail tx: %w", err)
	}
	defer tx.Rollback()

	d := &models.BusinessDetail{}
	var (
		ownerID      uuid.NullUUID
		ownerEmail   sql.NullString
		ownerFirst   *string
		ownerLast    *string
		ownerImage   *string
		ownerCreated sql.NullTime
		ownerUpdated sql.NullTime
	)
	err = tx.QueryRow(`
		SELECT `+businessColumns+`,
		       c.id, c.name, c.icon, c.slug, c.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.profile_image_url,
		       u.created_at, u.updated_at
		FROM businesses b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN users u ON u.id = b.owner_id
		WHERE b.id = $1 AND b.is_active = TRUE
	`, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Address, &d.Phone,
		&d.CategoryID, &d.OwnerID, &d.Latitude, &d.Longitude, &d.ImageURL,
		&d.IsVerified, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&d.Category.ID, &d.Category.Name, &d.Category.Icon,
		&d.Category.Slug, &d.Category.CreatedAt,
		&ownerID, &ownerEmail, &ownerFirst, &ownerLast,
		&ownerImage, &ownerCreated, &ownerUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get business detail: %w", err)
	}

	if ownerID.Valid {
		d.Owner = &models.User{
			ID:              ownerID.UUID,
			Email:           ownerEmail.String,
			FirstName:       ownerFirst,
			LastName:        ownerLast,
			ProfileImageURL: ownerImage,
			CreatedAt:       ownerCreated.Time,
			UpdatedAt:       ownerUpdated.Time,
		}
	}

	d.Reviews, err = listReviewsWithUsers(tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit detail tx: %w", err)
	}

	d.ReviewCount = len(d.Reviews)
	if d.ReviewCount > 0 {
		var sum int
		for _, rv := range d.Reviews {
			sum += rv.Rating
		}
		d.AverageRating = float64(sum) / float64(d.ReviewCount)
	}
	return d, nil
}

// Create inserts a new business and returns it.
func (s *BusinessStore) Create(b *models.Business) (*models.Business, error) {
	result := &models.Business{}
	err := s.db.QueryRow(`
		INSERT INTO businesses (name, description, address, phone, category_id,
		                        owner_id, latitude, longitude, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, description, address, phone, category_id, owner_id,
		          latitude, longitude, image_url, is_verified, is_active,
		          created_at, updated_at
	`, b.Name, b.Description, b.Address, b.Phone, b.CategoryID,
		b.OwnerID, b.Latitude, b.Longitude, b.ImageURL,
	).Scan(
		&result.ID, &result.Name, &result.Description, &result.Address, &result.Phone,
		&result.CategoryID, &result.OwnerID, &result.Latitude, &result.Longitude,
		&result.ImageURL, &result.IsVerified, &result.IsActive,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if isPgError(err, pgForeignKeyViolation) {
		return nil, fmt.Errorf("create business: %w: %w", ErrUnknownCategory, err)
	}
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return result, nil
}

// Update writes the mutable business fields and returns the updated row.
// Returns nil if the business does not exist.
func (s *BusinessStore) Update(b *models.Business) (*models.Business, error) {
	result := &models.Business{}
	err := s.db.QueryRow(`
		UPDATE businesses SET
			name = $1, description = $2, address = $3, phone = $4,
			category_id = $5, latitude = $6, longitude = $7, image_url = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING id, name, description, address, phone, category_id, owner_id,
		          latitude, longitude, image_url, is_verified, is_active,
		          created_at, updated_at
	`, b.Name, b.Description, b.Address, b.Phone, b.CategoryID,
		b.Latitude, b.Longitude, b.ImageURL, b.ID,
	).Scan(
		&result.ID, &result.Name, &result.Description, &result.Address, &result.Phone,
		&result.CategoryID, &result.OwnerID, &result.Latitude, &result.Longitude,
		&result.ImageURL, &result.IsVerified, &result.IsActive,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isPgError(err, pgForeignKeyViolation) {
		return nil, fmt.Errorf("update business: %w: %w", ErrUnknownCategory, err)
	}
	if err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	return result, nil
}

// SoftDelete flips is_active to false. The row and its reviews remain in
// storage. Returns false if no active business matched.
func (s *BusinessStore) SoftDelete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE businesses SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete business: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete business: %w", err)
	}
	return n > 0, nil
}

// SetImageURL stores the uploaded image URL for a business.
func (s *BusinessStore) SetImageURL(id uuid.UUID, url string) error {
	_, err := s.db.Exec(`
		UPDATE businesses SET image_url = $1, updated_at = NOW() WHERE id = $2
	`, url, id)
	if err != nil {
		return fmt.Errorf("set business image: %w", err)
	}
	return nil
}
