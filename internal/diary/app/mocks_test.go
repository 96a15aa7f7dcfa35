package app_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/domain/services"
)

type mockEntryRepository struct {
	mock.Mock
}

func (m *mockEntryRepository) Create(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

func (m *mockEntryRepository) FindByID(ctx context.Context, entryID string) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

func (m *mockEntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.DiaryEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiaryEntry), args.Error(1)
}

func (m *mockEntryRepository) FindByOwnerAndDay(ctx context.Context, ownerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error) {
	args := m.Called(ctx, ownerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiaryEntry), args.Error(1)
}

func (m *mockEntryRepository) Update(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

func (m *mockEntryRepository) Delete(ctx context.Context, entryID, ownerID string) error {
	return m.Called(ctx, entryID, ownerID).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	args := m.Called(ctx, userID, username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mockImageStorage struct {
	mock.Mock
}

func (m *mockImageStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *mockImageStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// memoryCache in-memory реализация cache.Cache с возможностью отказа.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
	fail  error
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return "", c.fail
	}
	return c.items[key], nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.sets++
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) Close() error { return nil }

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// memoryEntryRepository хранит записи в памяти и группирует их по тому же ключу дня,
// что и Postgres реализация.
type memoryEntryRepository struct {
	mu      sync.Mutex
	entries map[string]*entities.DiaryEntry
	now     func() time.Time
}

func newMemoryEntryRepository() *memoryEntryRepository {
	return &memoryEntryRepository{entries: map[string]*entities.DiaryEntry{}, now: time.Now}
}

func clone(e *entities.DiaryEntry) *entities.DiaryEntry {
	c := *e
	c.Images = append([]entities.ImageRef{}, e.Images...)
	return &c
}

func (r *memoryEntryRepository) Create(_ context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clone(entry)
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.entries[stored.ID] = stored
	return clone(stored), nil
}

func (r *memoryEntryRepository) FindByID(_ context.Context, entryID string) (*entities.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok {
		return nil, entities.ErrEntryNotFound
	}
	return clone(e), nil
}

func (r *memoryEntryRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.DiaryEntry, error) {
	return r.filter(func(e *entities.DiaryEntry) bool { return e.OwnerID == ownerID }), nil
}

func (r *memoryEntryRepository) FindByOwnerAndDay(_ context.Context, ownerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error) {
	return r.filter(func(e *entities.DiaryEntry) bool {
		return e.OwnerID == ownerID && entities.DayOf(e.OccurredAt) == day
	}), nil
}

func (r *memoryEntryRepository) Update(_ context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.entries[entry.ID]
	if !ok || stored.OwnerID != entry.OwnerID {
		return nil, entities.ErrEntryNotFound
	}
	stored.Title = entry.Title
	stored.Content = entry.Content
	stored.Mood = entry.Mood
	stored.UpdatedAt = r.now().UTC()
	return clone(stored), nil
}

func (r *memoryEntryRepository) Delete(_ context.Context, entryID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.entries[entryID]
	if !ok || stored.OwnerID != ownerID {
		return entities.ErrEntryNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func (r *memoryEntryRepository) filter(keep func(*entities.DiaryEntry) bool) []*entities.DiaryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.DiaryEntry, 0)
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *memoryEntryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
