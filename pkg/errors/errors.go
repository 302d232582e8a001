package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

func isErr(err, target error) bool { return stderrors.Is(err, target) }

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Common
	ErrNotFound       = fmt.Errorf("record not found")
	ErrConflict       = fmt.Errorf("record already exists")
	ErrBadRequest     = fmt.Errorf("bad request")
	ErrInternalServer = fmt.Errorf("internal server error")
)

// HttpError carries an explicit HTTP status alongside the message shown to
// the client. Repositories and services return sentinels; controllers and the
// error responder translate them into HttpError.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]string
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusOf maps sentinel errors to their HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	}
	for sentinel, code := range sentinelStatuses {
		if isErr(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}

var sentinelStatuses = map[error]int{
	ErrInvalidSigningMethod: http.StatusUnauthorized,
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrTokenExpired:         http.StatusUnauthorized,
	ErrTokenNotYetValid:     http.StatusUnauthorized,
	ErrTokenIsNotAccess:     http.StatusUnauthorized,
	ErrTokenIsNotRefresh:    http.StatusUnauthorized,
	ErrEmptyAuthHeader:      http.StatusUnauthorized,
	ErrInvalidAuthHeader:    http.StatusUnauthorized,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrForbidden:            http.StatusForbidden,
	ErrNotFound:             http.StatusNotFound,
	ErrConflict:             http.StatusConflict,
	ErrBadRequest:           http.StatusBadRequest,
}
