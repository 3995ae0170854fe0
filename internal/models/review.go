// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a star rating with an optional comment, left by one
// user on one business. At most one review exists per (business, user)
// pair — enforced by a unique constraint.
type Review struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"businessId"`
	UserID     uuid.UUID `json:"userId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReviewWithUser is a review joined to its author, as returned by the
// business review listing.
type ReviewWithUser struct {
	Review
	User User `json:"user"`
}
