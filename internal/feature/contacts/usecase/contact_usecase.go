package usecase

import (
	"context"
	"fmt"
	"strings"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// ContactRepository abstracts the persistence layer for contacts.
// Every method is scoped by the owning user's id.
type ContactRepository interface {
	// ListByUser returns the user's contacts, newest id first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Contact, error)

	// Create persists c and fills in ID and timestamps.
	Create(ctx context.Context, c *entity.Contact) error

	// FindByID returns ErrContactNotFound unless a contact with id belongs to userID.
	FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error)

	// Update overwrites name, email and phone of the contact matching c.ID and c.UserID.
	Update(ctx context.Context, c *entity.Contact) error

	// Delete removes the contact matching id and userID.
	Delete(ctx context.Context, userID, id uint) error
}

// ContactUsecase provides business logic for contact operations.
type ContactUsecase struct {
	repo ContactRepository
}

// NewContactUsecase creates a new ContactUsecase with the given repository.
func NewContactUsecase(r ContactRepository) *ContactUsecase {
	return &ContactUsecase{repo: r}
}

// List returns every contact owned by userID.
func (u *ContactUsecase) List(ctx context.Context, userID uint) ([]entity.Contact, error) {
	contacts, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Create stores a new contact for userID after trimming its fields.
func (u *ContactUsecase) Create(ctx context.Context, userID uint, in entity.Input) (*entity.Contact, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}

	c := &entity.Contact{
		UserID: userID,
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	// Read back so the response reflects what storage holds.
	return u.repo.FindByID(ctx, userID, c.ID)
}

// Get returns the contact with id if userID owns it.
func (u *ContactUsecase) Get(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return u.repo.FindByID(ctx, userID, id)
}

// Update replaces the editable fields of the contact with id if userID owns it.
// Nothing is written when the contact is missing or owned by someone else.
func (u *ContactUsecase) Update(ctx context.Context, userID, id uint, in entity.Input) (*entity.Contact, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}

	if _, err := u.repo.FindByID(ctx, userID, id); err != nil {
		return nil, err
	}

	c := &entity.Contact{
		ID:     id,
		UserID: userID,
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
	}
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, userID, id)
}

// Delete removes the contact with id if userID owns it.
func (u *ContactUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}

// normalize trims every field, rejects a blank name and turns blank optionals into nil.
func normalize(in entity.Input) (entity.Input, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entity.Input{}, ErrValidation
	}
	return entity.Input{
		Name:  name,
		Email: trimOptional(in.Email),
		Phone: trimOptional(in.Phone),
	}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
