// Package adapters provides repository implementations for the contacts feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// contactGorm is a GORM implementation of the ContactRepository interface.
// Every query filters on both id and user_id.
type contactGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.ContactRepository = (*contactGorm)(nil)

// NewContactRepository creates a new contactGorm bound to db.
func NewContactRepository(db *gorm.DB) *contactGorm {
	return &contactGorm{db: db, now: time.Now}
}

// ListByUser returns the user's contacts ordered by id descending.
func (r *contactGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Contact, error) {
	var rows []ContactModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Contact, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}

// Create inserts the contact and copies the generated id and timestamps back into c.
func (r *contactGorm) Create(ctx context.Context, c *entity.Contact) error {
	if c == nil {
		return errors.New("contact is nil")
	}
	m := ContactModelFromEntity(c)
	m.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID returns the contact with id owned by userID.
func (r *contactGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	var m ContactModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Update overwrites name, email and phone and refreshes updated_at.
// A nil email or phone is stored as NULL.
func (r *contactGorm) Update(ctx context.Context, c *entity.Contact) error {
	if c == nil {
		return errors.New("contact is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&ContactModel{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]any{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"updated_at": r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}

// Delete removes the contact with id owned by userID.
func (r *contactGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&ContactModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}
