package adapters

import (
	"time"

	authentity "contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/contacts/domain/entity"
)

// ContactModel is the GORM model for the contacts table.
type ContactModel struct {
	ID     uint            `gorm:"primaryKey"`
	UserID uint            `gorm:"index;not null"`
	User   authentity.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name   string          `gorm:"size:255;not null"`
	Email  *string         `gorm:"size:255"`
	Phone  *string         `gorm:"size:64"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}

// ToEntity converts the GORM model to a domain entity.
func (m *ContactModel) ToEntity() *entity.Contact {
	return &entity.Contact{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ContactModelFromEntity converts a domain entity to a GORM model.
func ContactModelFromEntity(c *entity.Contact) *ContactModel {
	return &ContactModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
