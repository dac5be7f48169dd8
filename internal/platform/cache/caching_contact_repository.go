// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// DefaultTTL applies when a non-positive TTL is configured.
const DefaultTTL = 5 * time.Minute

// CachingContactRepository decorates a ContactRepository with a Redis cache of
// each user's contact list. Writes bump the owner's list generation.
// Cache errors never fail a request.
type CachingContactRepository struct {
	inner     usecase.ContactRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	log       *zap.Logger
}

var _ usecase.ContactRepository = (*CachingContactRepository)(nil)

// NewCachingContactRepository wraps inner. A nil rdb disables caching entirely.
// If namespace is empty, it uses "contacts".
func NewCachingContactRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ContactRepository, namespace string, log *zap.Logger) *CachingContactRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "contacts"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingContactRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		log:       log,
	}
}

// ListByUser serves the user's list from Redis, falling back to the inner repository.
// The list key embeds the user's generation counter, so a list read from the
// database before a concurrent write lands under a generation nobody reads again.
func (c *CachingContactRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Contact, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	gen, err := c.rdb.Get(ctx, c.genKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("contact cache generation read failed", zap.Uint("user_id", userID), zap.Error(err))
		return c.inner.ListByUser(ctx, userID)
	}
	key := c.listKey(userID, gen)

	// 1) Check cache
	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []entity.Contact
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		c.log.Warn("contact cache read failed", zap.String("key", key), zap.Error(err))
	}

	// 2) Fallback to database
	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn("contact cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// FindByID is never cached.
func (c *CachingContactRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return c.inner.FindByID(ctx, userID, id)
}

// Create stores the contact and invalidates the owner's list.
func (c *CachingContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if err := c.inner.Create(ctx, contact); err != nil {
		return err
	}
	c.invalidate(ctx, contact.UserID)
	return nil
}

// Update writes the contact and invalidates the owner's list.
func (c *CachingContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	if err := c.inner.Update(ctx, contact); err != nil {
		return err
	}
	c.invalidate(ctx, contact.UserID)
	return nil
}

// Delete removes the contact and invalidates the owner's list.
func (c *CachingContactRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate bumps the user's generation. Lists cached under older
// generations are never read again and expire with their TTL.
func (c *CachingContactRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	key := c.genKey(userID)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		c.log.Warn("contact cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// genKey returns the key of the user's list generation counter.
func (c *CachingContactRepository) genKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d:gen", c.namespace, userID)
}

// listKey returns the cache key for a user's contact list at generation gen.
func (c *CachingContactRepository) listKey(userID uint, gen int64) string {
	return fmt.Sprintf("%s:user:%d:v%d", c.namespace, userID, gen)
}
