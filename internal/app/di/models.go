package di

import (
	authentity "contacts_backend/internal/feature/auth/domain/entity"
	contactadapters "contacts_backend/internal/feature/contacts/adapters"
)

// Models lists the gorm models auto-migrated on sqlite, parents first.
func Models() []any {
	return []any{&authentity.User{}, &contactadapters.ContactModel{}}
}
