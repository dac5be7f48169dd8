// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	contactadapters "contacts_backend/internal/feature/contacts/adapters"
	"contacts_backend/internal/feature/contacts/usecase"
	"contacts_backend/internal/platform/cache"
)

// NewContactRepository creates a ContactRepository implementation.
// If Redis is available, the gorm repository is wrapped with the list cache.
func NewContactRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration, log *zap.Logger) usecase.ContactRepository {
	repo := contactadapters.NewContactRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingContactRepository(rdb, ttl, repo, "contacts", log)
}
