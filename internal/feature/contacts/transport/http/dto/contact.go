// Package dto defines data transfer objects for the contacts feature's HTTP transport layer.
package dto

import (
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// ContactReq is the request body for creating or replacing a contact.
type ContactReq struct {
	Name  string  `json:"name" binding:"required,notblank"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ToInput converts the request to the usecase input.
func (r ContactReq) ToInput() entity.Input {
	return entity.Input{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// ContactRes is the JSON representation of a contact. The owner id is never exposed.
type ContactRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContactRes converts an entity to its response form.
func NewContactRes(c entity.Contact) ContactRes {
	return ContactRes{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewContactListRes converts a slice of entities, never returning nil.
func NewContactListRes(cs []entity.Contact) []ContactRes {
	out := make([]ContactRes, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewContactRes(c))
	}
	return out
}
