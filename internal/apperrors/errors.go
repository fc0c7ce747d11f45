package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a request is missing or has malformed fields.
	ErrValidation = errors.New("invalid request")
	// ErrInvalidCredentials is returned for any failed sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a request has no usable session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when a session refers to an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned on signup with a registered email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrProfileIncomplete is returned when a user has no daily targets yet.
	ErrProfileIncomplete = errors.New("user profile incomplete")
	// ErrAnalysisFailed is returned when the advisory call fails or its output is unusable.
	ErrAnalysisFailed = errors.New("failed to analyze food")
	// ErrClassificationFailed is returned when the image classifier fails.
	ErrClassificationFailed = errors.New("failed to classify image")
	// ErrRateLimited is returned when a per-user limit is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("record not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// validationError keeps a class-level message while matching ErrValidation.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Validation returns an error that matches ErrValidation and carries msg as
// its user-visible message.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *validationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadRequest, ve.msg, "VALIDATION_ERROR")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, ErrValidation.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrProfileIncomplete):
		return NewHTTPError(http.StatusBadRequest, ErrProfileIncomplete.Error(), "PROFILE_INCOMPLETE")
	case errors.Is(err, ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, ErrRateLimited.Error(), "RATE_LIMITED")
	case errors.Is(err, ErrAnalysisFailed):
		return NewHTTPError(http.StatusInternalServerError, ErrAnalysisFailed.Error(), "ANALYSIS_FAILED")
	case errors.Is(err, ErrClassificationFailed):
		return NewHTTPError(http.StatusInternalServerError, ErrClassificationFailed.Error(), "CLASSIFICATION_FAILED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
