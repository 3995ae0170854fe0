// Package store provides database access methods for all LocalSpot
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateReview is returned when a user tries to review a business
// they have already reviewed. Backed by the unique constraint on
// (business_id, user_id), so concurrent submissions cannot slip through.
var ErrDuplicateReview = errors.New("user already reviewed this business")

// ErrUnknownCategory is returned when a business references a category
// that does not exist.
var ErrUnknownCategory = errors.New("unknown category")

// ErrUnknownBusiness is returned when a review references a business that
// does not exist (or was physically removed).
var ErrUnknownBusiness = errors.New("unknown business")

// Postgres error codes we translate into application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isPgError reports whether err is a Postgres error with the given code.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
