package handlers

import (
	"strings"
	"unicode/utf8"

	"localspot/internal/models"
)

// Validation limits mirroring the column sizes in the schema.
const (
	maxNameLen     = 200
	maxDescLen     = 5_000
	maxAddressLen  = 500
	maxPhoneLen    = 20
	maxCommentLen  = 2_000
	maxEmailLen    = 255
	maxUserNameLen = 100
	maxCatNameLen  = 100
	maxIconLen     = 50
	maxSlugLen     = 100
	minPasswordLen = 8
)

// validateBusiness checks required business fields and lengths. Returns a
// map of field → message; empty map means valid.
func validateBusiness(name, address string, description, phone *string, hasCategory bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = "Name is required."
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs["name"] = "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(address) == "" {
		errs["address"] = "Address is required."
	} else if utf8.RuneCountInString(address) > maxAddressLen {
		errs["address"] = "Address is too long (max 500 characters)."
	}
	if !hasCategory {
		errs["categoryId"] = "Category is required."
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescLen {
		errs["description"] = "Description is too long (max 5,000 characters)."
	}
	if phone != nil && utf8.RuneCountInString(*phone) > maxPhoneLen {
		errs["phone"] = "Phone is too long (max 20 characters)."
	}
	return errs
}

// validateReview checks the rating bounds and comment length.
func validateReview(rating *int, comment *string) map[string]string {
	errs := map[string]string{}
	if rating == nil {
		errs["rating"] = "Rating is required."
	} else if *rating < models.MinRating || *rating > models.MaxRating {
		errs["rating"] = "Rating must be between 1 and 5."
	}
	if comment != nil && utf8.RuneCountInString(*comment) > maxCommentLen {
		errs["comment"] = "Comment is too long (max 2,000 characters)."
	}
	return errs
}

// validateCategory checks category fields. The slug may be empty — it is
// generated from the name when omitted.
func validateCategory(name, icon, slug string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = "Name is required."
	} else if utf8.RuneCountInString(name) > maxCatNameLen {
		errs["name"] = "Name is too long (max 100 characters)."
	}
	if strings.TrimSpace(icon) == "" {
		errs["icon"] = "Icon is required."
	} else if utf8.RuneCountInString(icon) > maxIconLen {
		errs["icon"] = "Icon is too long (max 50 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		errs["slug"] = "Slug is too long (max 100 characters)."
	}
	return errs
}

// validateCredentials checks registration input. A full RFC-compliant email
// check is not attempted; the unique constraint is the real gate.
func validateCredentials(email, password string, firstName, lastName *string) map[string]string {
	errs := map[string]string{}
	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = "Email is required."
	} else if !strings.Contains(email, "@") || utf8.RuneCountInString(email) > maxEmailLen {
		errs["email"] = "Email is not valid."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters."
	}
	if firstName != nil && utf8.RuneCountInString(*firstName) > maxUserNameLen {
		errs["firstName"] = "First name is too long (max 100 characters)."
	}
	if lastName != nil && utf8.RuneCountInString(*lastName) > maxUserNameLen {
		errs["lastName"] = "Last name is too long (max 100 characters)."
	}
	return errs
}
