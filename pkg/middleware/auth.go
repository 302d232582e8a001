package middleware

import (
	"context"
	"errors"
	"strings"

	"rtub-system/internal/claims"
	"rtub-system/pkg/contextkeys"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/service"
	"rtub-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PrincipalResolver turns a user id into a fully materialized principal with
// category/position claims. The claims service (with its cache) implements it.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID uint64) (*claims.Principal, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	resolver   PrincipalResolver
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, resolver PrincipalResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		resolver:   resolver,
		logger:     logger,
	}
}

// Auth validates the bearer token, resolves the claims principal (through
// the claims cache) and stores both the user id and the principal in the
// request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		tokenClaims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}
		if tokenClaims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		principal, err := m.resolver.Resolve(c.Request().Context(), tokenClaims.UserID)
		if err != nil {
			// a deleted or deactivated member holds a now-worthless token;
			// anything else is infrastructure
			if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnauthorized) {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			m.logger.Error("principal resolution failed", zap.Uint64("userID", tokenClaims.UserID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrInternalServer, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, tokenClaims.UserID)
		ctx = context.WithValue(ctx, contextkeys.PrincipalKey, principal)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
