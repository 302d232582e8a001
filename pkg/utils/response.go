package utils

import (
	"errors"
	"net/http"

	apperrors "rtub-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

// SuccessResponse writes the standard envelope. An optional trailing total
// count is attached for paginated lists.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.TotalCount = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse resolves err to an HTTP status and writes the envelope.
// Validation errors become 422 with per-field details; HttpError carries its
// own status; everything else goes through the sentinel table.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "internal server error"
	var details map[string]string

	var validationErrs validator.ValidationErrors
	var httpErr *apperrors.HttpError

	switch {
	case errors.As(err, &validationErrs):
		code = http.StatusUnprocessableEntity
		message = "validation failed"
		details = make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		details = httpErr.Details
	default:
		if status := apperrors.StatusOf(err); status != http.StatusInternalServerError {
			code = status
			message = err.Error()
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	}

	return ctx.JSON(code, &HTTPResponse{
		Status:  false,
		Body:    detailsBody(details),
		Message: message,
	})
}

func detailsBody(details map[string]string) interface{} {
	if len(details) == 0 {
		return struct{}{}
	}
	return details
}
