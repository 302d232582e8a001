package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/types"
)

// stubMemberRepo serves one member and counts roster loads.
type stubMemberRepo struct {
	member    *entities.Member
	loadCount int
}

func (s *stubMemberRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error) {
	if s.member == nil || s.member.ID != id {
		return nil, apperrors.ErrNotFound
	}
	s.loadCount++
	copied := *s.member
	return &copied, nil
}

func (s *stubMemberRepo) FindByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Member, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubMemberRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Member, uint64, error) {
	return nil, 0, nil
}

func (s *stubMemberRepo) Create(ctx context.Context, tx pgx.Tx, m entities.Member) (uint64, error) {
	return 0, nil
}
func (s *stubMemberRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, m entities.Member) error {
	return nil
}
func (s *stubMemberRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error { return nil }
func (s *stubMemberRepo) GrantCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error {
	return nil
}
func (s *stubMemberRepo) RevokeCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error {
	return nil
}
func (s *stubMemberRepo) AssignPosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error {
	return nil
}
func (s *stubMemberRepo) RemovePosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error {
	return nil
}
func (s *stubMemberRepo) SetRoles(ctx context.Context, tx pgx.Tx, memberID uint64, roles []string) error {
	return nil
}

// memoryCache is a map-backed cache; TTLs are accepted but not enforced, the
// tests drive expiry through Del.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	broken  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.broken {
		return assert.AnError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.entries[key] = string(v)
	case string:
		c.entries[key] = v
	}
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	if c.broken {
		return "", assert.AnError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (c *memoryCache) Del(ctx context.Context, keys ...string) error {
	if c.broken {
		return assert.AnError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func testMember() *entities.Member {
	return &entities.Member{
		ID:         42,
		FullName:   "Maria Silva",
		Email:      "maria@rtub.local",
		IsActive:   true,
		Roles:      []string{"Member"},
		Categories: []string{"Leitao", "Caloiro"},
		Positions:  []string{"Secretario"},
	}
}

func TestResolveCachesBetweenCalls(t *testing.T) {
	repo := &stubMemberRepo{member: testMember()}
	cache := newMemoryCache()
	svc := NewClaimsService(repo, cache, 10*time.Minute, zap.NewNop())

	first, err := svc.Resolve(context.Background(), 42)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.loadCount, "second resolve must come from cache")
	assert.Equal(t, first.Categories(), second.Categories())
	assert.Equal(t, first.Positions(), second.Positions())
	assert.Equal(t, first.UserID, second.UserID)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	repo := &stubMemberRepo{member: testMember()}
	cache := newMemoryCache()
	svc := NewClaimsService(repo, cache, 10*time.Minute, zap.NewNop())

	_, err := svc.Resolve(context.Background(), 42)
	require.NoError(t, err)

	repo.member.Categories = []string{"Leitao", "Caloiro", "Tuno"}
	require.NoError(t, svc.Invalidate(context.Background(), 42))

	rebuilt, err := svc.Resolve(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.loadCount, "invalidation must trigger exactly one reload")
	assert.ElementsMatch(t, []string{"Leitao", "Caloiro", "Tuno"}, rebuilt.Categories())
}

func TestResolveSurvivesBrokenCache(t *testing.T) {
	repo := &stubMemberRepo{member: testMember()}
	cache := newMemoryCache()
	cache.broken = true
	svc := NewClaimsService(repo, cache, 10*time.Minute, zap.NewNop())

	p, err := svc.Resolve(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.UserID)
}

func TestResolveRejectsInactiveMember(t *testing.T) {
	member := testMember()
	member.IsActive = false
	repo := &stubMemberRepo{member: member}
	svc := NewClaimsService(repo, newMemoryCache(), 10*time.Minute, zap.NewNop())

	_, err := svc.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestResolveUnknownMemberFailsOpen(t *testing.T) {
	cache := newMemoryCache()
	svc := NewClaimsService(&stubMemberRepo{}, cache, 10*time.Minute, zap.NewNop())

	p, err := svc.Resolve(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, p)

	// bare principal: identity survives, no claims, so every policy denies
	assert.Equal(t, uint64(99), p.UserID)
	assert.Empty(t, p.Categories())
	assert.Empty(t, p.Positions())
	assert.False(t, authz.Evaluate(authz.PolicyMemberManagement, p))
	assert.False(t, authz.Evaluate(authz.PolicyAtLeastCaloiro, p))

	// not cached: a roster insert must take effect on the next resolve
	assert.Empty(t, cache.entries)
}

func TestResolveZeroUserIDPassesThrough(t *testing.T) {
	repo := &stubMemberRepo{}
	svc := NewClaimsService(repo, newMemoryCache(), 10*time.Minute, zap.NewNop())

	p, err := svc.Resolve(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, p.IsAuthenticated())
	assert.Equal(t, 0, repo.loadCount)
}
