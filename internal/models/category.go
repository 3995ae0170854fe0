// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a business category. Categories are created by an
// administrative action and are immutable in practice — there is no update
// operation. Every business references exactly one category.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
