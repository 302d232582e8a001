package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rtub-system/internal/claims"
	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	apperrors "rtub-system/pkg/errors"
)

const claimsCacheKeyPrefix = "claims:user:"

type ClaimsServiceInterface interface {
	Resolve(ctx context.Context, userID uint64) (*claims.Principal, error)
	Invalidate(ctx context.Context, userID uint64) error
}

// ClaimsService rebuilds a member's principal from the roster and keeps it in
// the cache between rebuilds. Cache read or write failures fall through to the
// database; a broken cache slows requests down but never fails them.
type ClaimsService struct {
	memberRepo repositories.MemberRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewClaimsService(
	memberRepo repositories.MemberRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ClaimsServiceInterface {
	return &ClaimsService{
		memberRepo: memberRepo,
		cacheRepo:  cacheRepo,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func claimsCacheKey(userID uint64) string {
	return fmt.Sprintf("%s%d", claimsCacheKeyPrefix, userID)
}

func (s *ClaimsService) Resolve(ctx context.Context, userID uint64) (*claims.Principal, error) {
	if userID == 0 {
		return &claims.Principal{Claims: claims.ClaimSet{}}, nil
	}

	key := claimsCacheKey(userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && cached != "" {
		var p claims.Principal
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
		s.logger.Warn("corrupt claims cache entry, rebuilding", zap.Uint64("user_id", userID))
	}

	member, err := s.memberRepo.FindByID(ctx, nil, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// no roster record: hand back a bare principal with no claims so
		// every policy denies, rather than failing the request. Not cached;
		// a roster insert takes effect on the next resolve.
		s.logger.Warn("no member record for authenticated user", zap.Uint64("user_id", userID))
		return &claims.Principal{UserID: userID, Claims: claims.ClaimSet{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	principal := claims.Project(recordFromMember(member))

	if payload, err := json.Marshal(principal); err == nil {
		if err := s.cacheRepo.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache claims", zap.Uint64("user_id", userID), zap.Error(err))
		}
	}

	return principal, nil
}

// Invalidate drops the cached principal so the next resolve rebuilds it from
// the roster. Every membership mutation must call this.
func (s *ClaimsService) Invalidate(ctx context.Context, userID uint64) error {
	if err := s.cacheRepo.Del(ctx, claimsCacheKey(userID)); err != nil {
		s.logger.Error("failed to invalidate claims cache", zap.Uint64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func recordFromMember(m *entities.Member) *claims.MemberRecord {
	username := m.FullName
	if m.Nickname != nil && *m.Nickname != "" {
		username = *m.Nickname
	}
	return &claims.MemberRecord{
		ID:          m.ID,
		Username:    username,
		Email:       m.Email,
		Roles:       m.Roles,
		Categories:  m.Categories,
		Positions:   m.Positions,
		YearsAsTuno: m.YearsAsTuno(time.Now()),
		IsFounder:   m.IsFounder,
	}
}
