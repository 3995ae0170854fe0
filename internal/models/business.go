// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Business represents a listed local business. A business always belongs to
// exactly one category and optionally to an owning user (the creator).
// Deletion is a soft delete: IsActive flips to false and the row stays.
type Business struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Address     string     `json:"address"`
	Phone       *string    `json:"phone"`
	CategoryID  uuid.UUID  `json:"categoryId"`
	OwnerID     *uuid.UUID `json:"ownerId"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	ImageURL    *string    `json:"imageUrl"`
	IsVerified  bool       `json:"isVerified"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BusinessSummary is a business with its category and derived rating
// aggregate, as returned by listing queries. AverageRating and ReviewCount
// are computed from the reviews table on every read, never stored.
type BusinessSummary struct {
	Business
	Category      Category `json:"category"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// BusinessDetail is the full composite record for a business detail page:
// the business, its category, optional owner, all reviews with their
// authors, and the rating aggregate.
type BusinessDetail struct {
	Business
	Category      Category         `json:"category"`
	Owner         *User            `json:"owner,omitempty"`
	Reviews       []ReviewWithUser `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
}
