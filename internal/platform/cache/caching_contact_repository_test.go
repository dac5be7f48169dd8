package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// mockContactRepository is a mock ContactRepository for tests.
type mockContactRepository struct {
	listFn   func(ctx context.Context, userID uint) ([]entity.Contact, error)
	createFn func(ctx context.Context, c *entity.Contact) error
	findFn   func(ctx context.Context, userID, id uint) (*entity.Contact, error)
	updateFn func(ctx context.Context, c *entity.Contact) error
	deleteFn func(ctx context.Context, userID, id uint) error
}

func (m *mockContactRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Contact, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID, id)
	}
	return nil, usecase.ErrContactNotFound
}

func (m *mockContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

var ts = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func sampleContacts() []entity.Contact {
	email := "alice@test.com"
	return []entity.Contact{{ID: 1, UserID: 7, Name: "Alice", Email: &email, CreatedAt: ts, UpdatedAt: ts}}
}

func TestNewCachingContactRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", DefaultTTL, "contacts"},
		{"negative ttl uses default", -time.Minute, "", DefaultTTL, "contacts"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingContactRepository(nil, tt.ttl, &mockContactRepository{}, tt.namespace, nil)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
			assert.Equal(t, tt.expectedNamespace+":user:7:gen", repo.genKey(7))
			assert.Equal(t, tt.expectedNamespace+":user:7:v3", repo.listKey(7, 3))
		})
	}
}

func TestCachingContactRepository_NilRedisPassesThrough(t *testing.T) {
	t.Parallel()

	calls := 0
	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) {
			calls++
			return sampleContacts(), nil
		},
	}
	repo := NewCachingContactRepository(nil, time.Minute, inner, "", nil)

	for i := 0; i < 2; i++ {
		got, err := repo.ListByUser(context.Background(), 7)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 2, calls)

	require.NoError(t, repo.Create(context.Background(), &entity.Contact{UserID: 7}))
	require.NoError(t, repo.Delete(context.Background(), 7, 1))
}

func TestCachingContactRepository_ListByUser_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(sampleContacts())
	mock.ExpectGet("contacts:user:7:gen").SetVal("3")
	mock.ExpectGet("contacts:user:7:v3").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingContactRepository(rdb, 5*time.Minute, inner, "", nil)
	got, err := repo.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	assert.False(t, innerCalled, "inner repository should not be called on cache hit")
	assert.Equal(t, sampleContacts(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_ListByUser_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleContacts())
	mock.ExpectGet("contacts:user:7:gen").RedisNil()
	mock.ExpectGet("contacts:user:7:v0").RedisNil()
	mock.ExpectSet("contacts:user:7:v0", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) {
			assert.Equal(t, uint(7), userID)
			return sampleContacts(), nil
		},
	}

	repo := NewCachingContactRepository(rdb, 5*time.Minute, inner, "", nil)
	got, err := repo.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_ListByUser_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleContacts())
	mock.ExpectGet("contacts:user:7:gen").SetVal("1")
	mock.ExpectGet("contacts:user:7:v1").SetVal("invalid json")
	mock.ExpectDel("contacts:user:7:v1").SetVal(1)
	mock.ExpectSet("contacts:user:7:v1", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) { return sampleContacts(), nil },
	}

	repo := NewCachingContactRepository(rdb, 5*time.Minute, inner, "", nil)
	got, err := repo.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_ListByUser_RedisDownFallsBack(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("contacts:user:7:gen").SetErr(errors.New("connection refused"))

	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) { return sampleContacts(), nil },
	}

	repo := NewCachingContactRepository(rdb, 5*time.Minute, inner, "", nil)
	got, err := repo.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_ListByUser_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("contacts:user:7:gen").RedisNil()
	mock.ExpectGet("contacts:user:7:v0").RedisNil()

	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) { return nil, expectedErr },
	}

	repo := NewCachingContactRepository(rdb, 5*time.Minute, inner, "", nil)
	_, err := repo.ListByUser(context.Background(), 7)

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(repo *CachingContactRepository) error
	}{
		{"create", func(repo *CachingContactRepository) error {
			return repo.Create(context.Background(), &entity.Contact{UserID: 7, Name: "Bob"})
		}},
		{"update", func(repo *CachingContactRepository) error {
			return repo.Update(context.Background(), &entity.Contact{ID: 1, UserID: 7, Name: "Bob"})
		}},
		{"delete", func(repo *CachingContactRepository) error {
			return repo.Delete(context.Background(), 7, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()
			mock.ExpectIncr("contacts:user:7:gen").SetVal(1)

			repo := NewCachingContactRepository(rdb, time.Minute, &mockContactRepository{}, "", nil)

			require.NoError(t, tt.write(repo))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCachingContactRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockContactRepository{
		updateFn: func(ctx context.Context, c *entity.Contact) error { return usecase.ErrContactNotFound },
		deleteFn: func(ctx context.Context, userID, id uint) error { return usecase.ErrContactNotFound },
	}
	repo := NewCachingContactRepository(rdb, time.Minute, inner, "", nil)

	assert.ErrorIs(t, repo.Update(context.Background(), &entity.Contact{ID: 1, UserID: 7}), usecase.ErrContactNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), 7, 1), usecase.ErrContactNotFound)
	// No Redis command may have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_InvalidationErrorIsIgnored(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectIncr("contacts:user:7:gen").SetErr(errors.New("timeout"))

	repo := NewCachingContactRepository(rdb, time.Minute, &mockContactRepository{}, "", nil)

	assert.NoError(t, repo.Delete(context.Background(), 7, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_FindByIDNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockContactRepository{
		findFn: func(ctx context.Context, userID, id uint) (*entity.Contact, error) {
			return &entity.Contact{ID: id, UserID: userID, Name: "Alice"}, nil
		},
	}
	repo := NewCachingContactRepository(rdb, time.Minute, inner, "", nil)

	got, err := repo.FindByID(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingContactRepository_ListRacingWriteIsNotServedStale(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	before := sampleContacts()
	after := append(sampleContacts(), entity.Contact{ID: 2, UserID: 7, Name: "Bob", CreatedAt: ts, UpdatedAt: ts})
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	// First list: miss at generation 0. While it reads the database a Create
	// commits and bumps the generation, then the outdated list is stored under v0.
	mock.ExpectGet("contacts:user:7:gen").RedisNil()
	mock.ExpectGet("contacts:user:7:v0").RedisNil()
	mock.ExpectIncr("contacts:user:7:gen").SetVal(1)
	mock.ExpectSet("contacts:user:7:v0", beforeJSON, time.Minute).SetVal("OK")
	// Second list reads generation 1, so the outdated v0 entry is never consulted.
	mock.ExpectGet("contacts:user:7:gen").SetVal("1")
	mock.ExpectGet("contacts:user:7:v1").RedisNil()
	mock.ExpectSet("contacts:user:7:v1", afterJSON, time.Minute).SetVal("OK")

	var repo *CachingContactRepository
	lists := 0
	inner := &mockContactRepository{
		listFn: func(ctx context.Context, userID uint) ([]entity.Contact, error) {
			lists++
			if lists == 1 {
				require.NoError(t, repo.Create(ctx, &entity.Contact{UserID: 7, Name: "Bob"}))
				return before, nil
			}
			return after, nil
		},
	}
	repo = NewCachingContactRepository(rdb, time.Minute, inner, "", nil)

	first, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
