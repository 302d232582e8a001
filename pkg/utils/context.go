package utils

import (
	"context"

	"rtub-system/pkg/contextkeys"
	apperrors "rtub-system/pkg/errors"
)

func UserIDFromContext(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}
