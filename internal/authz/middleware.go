package authz

import (
	"rtub-system/pkg/contextkeys"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/claims"
)

// RequirePolicy gates a route on a named policy from the catalog. The auth
// middleware must have resolved the principal first; a deny surfaces as 403.
func RequirePolicy(policy string, logger *zap.Logger) echo.MiddlewareFunc {
	return RequireAnyPolicy(logger, policy)
}

// RequireAnyPolicy passes when at least one of the named policies allows the
// principal. Used where independent bodies share a view, e.g. treasurers and
// the fiscal council over the ledger.
func RequireAnyPolicy(logger *zap.Logger, policies ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Request().Context().Value(contextkeys.PrincipalKey).(*claims.Principal)
			if !principal.IsAuthenticated() {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}
			for _, policy := range policies {
				if Evaluate(policy, principal) {
					return next(c)
				}
			}
			logger.Warn("policy denied",
				zap.Strings("policies", policies),
				zap.Uint64("userID", principal.UserID),
			)
			return utils.ErrorResponse(c, apperrors.ErrForbidden, logger)
		}
	}
}
