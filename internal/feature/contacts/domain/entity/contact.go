// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact is an address-book entry owned by exactly one user.
type Contact struct {
	ID     uint
	UserID uint
	Name   string
	// Email and Phone are nil when not provided.
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input carries the client-editable fields of a contact.
type Input struct {
	Name  string
	Email *string
	Phone *string
}
