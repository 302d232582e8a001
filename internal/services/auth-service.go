package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rtub-system/internal/claims"
	"rtub-system/internal/dto"
	"rtub-system/internal/repositories"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*claims.Principal, error)
}

type AuthService struct {
	memberRepo    repositories.MemberRepositoryInterface
	claimsService ClaimsServiceInterface
	jwtService    service.JWTService
	logger        *zap.Logger
}

func NewAuthService(
	memberRepo repositories.MemberRepositoryInterface,
	claimsService ClaimsServiceInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		memberRepo:    memberRepo,
		claimsService: claimsService,
		jwtService:    jwtService,
		logger:        logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	member, err := s.memberRepo.FindByEmail(ctx, nil, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(member.ID)
	if err != nil {
		return nil, err
	}

	principal, err := s.claimsService.Resolve(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member logged in", zap.Uint64("member_id", member.ID))

	return &dto.LoginResponseDTO{
		Tokens: dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		Principal: principal,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	tokenClaims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !tokenClaims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	member, err := s.memberRepo.FindByID(ctx, nil, tokenClaims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !member.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(member.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*claims.Principal, error) {
	return s.claimsService.Resolve(ctx, userID)
}
