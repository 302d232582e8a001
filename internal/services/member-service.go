package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rtub-system/internal/claims"
	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/repositories"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
	"rtub-system/pkg/utils"
)

type MemberServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.MemberResponseDTO, error)
	GetAll(ctx context.Context, filter types.Filter) ([]dto.MemberResponseDTO, uint64, error)
	Create(ctx context.Context, payload dto.CreateMemberDTO) (*dto.MemberResponseDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateMemberDTO) (*dto.MemberResponseDTO, error)
	Delete(ctx context.Context, id uint64) error

	GrantCategory(ctx context.Context, memberID uint64, category string) error
	RevokeCategory(ctx context.Context, memberID uint64, category string) error
	AssignPosition(ctx context.Context, memberID uint64, position string) error
	RemovePosition(ctx context.Context, memberID uint64, position string) error
	SetRoles(ctx context.Context, memberID uint64, roles []string) error
}

type MemberService struct {
	memberRepo    repositories.MemberRepositoryInterface
	txManager     repositories.TxManagerInterface
	claimsService ClaimsServiceInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewMemberService(
	memberRepo repositories.MemberRepositoryInterface,
	txManager repositories.TxManagerInterface,
	claimsService ClaimsServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) MemberServiceInterface {
	return &MemberService{
		memberRepo:    memberRepo,
		txManager:     txManager,
		claimsService: claimsService,
		bus:           bus,
		logger:        logger,
	}
}

func toMemberResponse(m *entities.Member) *dto.MemberResponseDTO {
	return &dto.MemberResponseDTO{
		ID:          m.ID,
		FullName:    m.FullName,
		Nickname:    m.Nickname,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		AvatarURL:   m.AvatarURL,
		JoinedAt:    m.JoinedAt,
		TunoSince:   m.TunoSince,
		IsFounder:   m.IsFounder,
		IsActive:    m.IsActive,
		Roles:       m.Roles,
		Categories:  m.Categories,
		Positions:   m.Positions,
	}
}

func (s *MemberService) GetByID(ctx context.Context, id uint64) (*dto.MemberResponseDTO, error) {
	member, err := s.memberRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return toMemberResponse(member), nil
}

func (s *MemberService) GetAll(ctx context.Context, filter types.Filter) ([]dto.MemberResponseDTO, uint64, error) {
	members, total, err := s.memberRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.MemberResponseDTO, 0, len(members))
	for _, m := range members {
		responses = append(responses, *toMemberResponse(m))
	}
	return responses, total, nil
}

func (s *MemberService) Create(ctx context.Context, payload dto.CreateMemberDTO) (*dto.MemberResponseDTO, error) {
	for _, c := range payload.Categories {
		if !claims.IsValidCategory(c) {
			return nil, apperrors.NewHttpError(400, fmt.Sprintf("unknown category: %s", c), apperrors.ErrBadRequest, nil)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := payload.Roles
	if len(roles) == 0 {
		roles = []string{claims.RoleMember}
	}

	member := entities.Member{
		FullName:    payload.FullName,
		Nickname:    payload.Nickname.Ptr(),
		Email:       strings.ToLower(payload.Email),
		PhoneNumber: payload.PhoneNumber.Ptr(),
		Password:    string(hashed),
		JoinedAt:    payload.JoinedAt,
		IsFounder:   payload.IsFounder,
		IsActive:    true,
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		newID, err = s.memberRepo.Create(ctx, tx, member)
		if err != nil {
			return err
		}
		if err := s.memberRepo.SetRoles(ctx, tx, newID, roles); err != nil {
			return err
		}
		for _, c := range payload.Categories {
			if err := s.memberRepo.GrantCategory(ctx, tx, newID, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member created", zap.Uint64("member_id", newID))
	s.publishMemberUpdated(ctx, newID, "created")
	return s.GetByID(ctx, newID)
}

func (s *MemberService) Update(ctx context.Context, id uint64, payload dto.UpdateMemberDTO) (*dto.MemberResponseDTO, error) {
	member, err := s.memberRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.FullName.Valid {
		member.FullName = payload.FullName.String
	}
	if payload.Nickname.Valid {
		member.Nickname = payload.Nickname.Ptr()
	}
	if payload.Email.Valid {
		member.Email = strings.ToLower(payload.Email.String)
	}
	if payload.PhoneNumber.Valid {
		member.PhoneNumber = payload.PhoneNumber.Ptr()
	}
	if payload.AvatarURL.Valid {
		member.AvatarURL = payload.AvatarURL.Ptr()
	}
	if payload.TunoSince != nil {
		member.TunoSince = payload.TunoSince
	}
	if payload.IsActive != nil {
		member.IsActive = *payload.IsActive
	}

	if err := s.memberRepo.Update(ctx, nil, id, *member); err != nil {
		return nil, err
	}

	s.invalidateClaims(ctx, id)
	s.publishMemberUpdated(ctx, id, "updated")
	return s.GetByID(ctx, id)
}

func (s *MemberService) Delete(ctx context.Context, id uint64) error {
	if err := s.memberRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.invalidateClaims(ctx, id)
	s.publishMemberUpdated(ctx, id, "deactivated")
	return nil
}

// GrantCategory adds a category without removing the previous one, so a
// member's history stays visible in the claim set; Leitao then Caloiro means
// holding both.
func (s *MemberService) GrantCategory(ctx context.Context, memberID uint64, category string) error {
	if !claims.IsValidCategory(category) {
		return apperrors.NewHttpError(400, fmt.Sprintf("unknown category: %s", category), apperrors.ErrBadRequest, nil)
	}
	if err := s.memberRepo.GrantCategory(ctx, nil, memberID, category); err != nil {
		return err
	}
	s.invalidateClaims(ctx, memberID)
	s.publishMemberUpdated(ctx, memberID, "category granted: "+category)
	return nil
}

func (s *MemberService) RevokeCategory(ctx context.Context, memberID uint64, category string) error {
	if err := s.memberRepo.RevokeCategory(ctx, nil, memberID, category); err != nil {
		return err
	}
	s.invalidateClaims(ctx, memberID)
	s.publishMemberUpdated(ctx, memberID, "category revoked: "+category)
	return nil
}

func (s *MemberService) AssignPosition(ctx context.Context, memberID uint64, position string) error {
	if !claims.IsValidPosition(position) {
		return apperrors.NewHttpError(400, fmt.Sprintf("unknown position: %s", position), apperrors.ErrBadRequest, nil)
	}
	if err := s.memberRepo.AssignPosition(ctx, nil, memberID, position); err != nil {
		return err
	}
	s.invalidateClaims(ctx, memberID)
	s.publishMemberUpdated(ctx, memberID, "position assigned: "+position)
	return nil
}

func (s *MemberService) RemovePosition(ctx context.Context, memberID uint64, position string) error {
	if err := s.memberRepo.RemovePosition(ctx, nil, memberID, position); err != nil {
		return err
	}
	s.invalidateClaims(ctx, memberID)
	s.publishMemberUpdated(ctx, memberID, "position removed: "+position)
	return nil
}

func (s *MemberService) SetRoles(ctx context.Context, memberID uint64, roles []string) error {
	if err := s.memberRepo.SetRoles(ctx, nil, memberID, roles); err != nil {
		return err
	}
	s.invalidateClaims(ctx, memberID)
	s.publishMemberUpdated(ctx, memberID, "roles changed")
	return nil
}

func (s *MemberService) invalidateClaims(ctx context.Context, memberID uint64) {
	if err := s.claimsService.Invalidate(ctx, memberID); err != nil {
		s.logger.Error("claims invalidation failed", zap.Uint64("member_id", memberID), zap.Error(err))
	}
}

func (s *MemberService) publishMemberUpdated(ctx context.Context, memberID uint64, change string) {
	actorID, _ := utils.UserIDFromContext(ctx)
	s.bus.Publish(ctx, domainevents.MemberUpdated{
		MemberID: memberID,
		ActorID:  actorID,
		Change:   change,
	})
}
