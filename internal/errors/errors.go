package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrContactNotFound is returned when a contact lookup yields nothing.
	ErrContactNotFound = errors.New("contact not found")
	// ErrUserAlreadyExists is returned when signing up with an existing email.
	ErrUserAlreadyExists = errors.New("account already exists")
	// ErrInvalidEmail is returned on login with an unknown email.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrEmailNotConfirmed is returned on login before the confirmation link was used.
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	// ErrInvalidPassword is returned on login with a wrong password.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidRefreshToken is returned when refresh-token rotation fails.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrVerification is returned when an email-confirmation token resolves to no user.
	ErrVerification = errors.New("verification error")
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

// MapErrorToHTTP maps domain errors to HTTP errors. The three login
// failures carry distinct messages but share the unauthorized status.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrContactNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CONTACT_NOT_FOUND")
	case ErrUserAlreadyExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case ErrInvalidEmail:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_EMAIL")
	case ErrEmailNotConfirmed:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_CONFIRMED")
	case ErrInvalidPassword:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_PASSWORD")
	case ErrInvalidRefreshToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case ErrVerification:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFICATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
