// Package usecase implements the business logic for the contacts feature.
package usecase

import "errors"

var (
	// ErrValidation is returned when the contact name is missing or blank.
	ErrValidation = errors.New("name is required")

	// ErrContactNotFound is returned when no contact matches both the id and the owning user.
	// Contacts owned by other users are reported with the same error.
	ErrContactNotFound = errors.New("contact not found")
)
