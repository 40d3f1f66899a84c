package errors

import (
	"errors"
	"net/http"
)

// Error codes carried in ErrorResponse.Code, one per taxonomy class.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// MsgServerError is the only message a client ever sees for an internal failure.
const MsgServerError = "Server error"

var (
	// ErrMissingCredentials is returned when email or password is absent.
	ErrMissingCredentials = errors.New("Email and password are required")
	// ErrPasswordTooLong is returned when a password exceeds the hashing limit.
	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrMissingProductFields is returned when name or price is absent.
	ErrMissingProductFields = errors.New("Name and price are required")
	// ErrInvalidPrice is returned when price is negative or not a number.
	ErrInvalidPrice = errors.New("Price must be a non-negative number")
	// ErrProductNotFound is returned when a product id matches nothing.
	ErrProductNotFound = errors.New("Product not found")
	// ErrUserNotFound is returned when a user id matches nothing.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidRole is returned when a role is not USER or ADMIN.
	ErrInvalidRole = errors.New("Invalid role specified")
	// ErrSelfRoleChange is returned when an admin targets their own account.
	ErrSelfRoleChange = errors.New("Admins cannot change their own role.")
	// ErrNoToken is returned when the Authorization header carries no bearer token.
	ErrNoToken = errors.New("Not authorized, no token")
	// ErrTokenFailed is returned when a bearer token does not verify.
	ErrTokenFailed = errors.New("Not authorized, token failed")
	// ErrAdminRequired is returned when a non-admin reaches an admin route.
	ErrAdminRequired = errors.New("Forbidden: Admin access required")
	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("Invalid request body")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
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
		Message: e.Message,
		Code:    e.Code,
	}
}

var classes = []struct {
	err    error
	status int
	code   string
}{
	{ErrInvalidBody, http.StatusBadRequest, CodeValidation},
	{ErrMissingCredentials, http.StatusBadRequest, CodeValidation},
	{ErrPasswordTooLong, http.StatusBadRequest, CodeValidation},
	{ErrMissingProductFields, http.StatusBadRequest, CodeValidation},
	{ErrInvalidPrice, http.StatusBadRequest, CodeValidation},
	{ErrInvalidRole, http.StatusBadRequest, CodeValidation},
	{ErrSelfRoleChange, http.StatusBadRequest, CodeValidation},
	{ErrUserAlreadyExists, http.StatusConflict, CodeConflict},
	{ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
	{ErrNoToken, http.StatusUnauthorized, CodeUnauthorized},
	{ErrTokenFailed, http.StatusUnauthorized, CodeUnauthorized},
	{ErrAdminRequired, http.StatusForbidden, CodeForbidden},
	{ErrProductNotFound, http.StatusNotFound, CodeNotFound},
	{ErrUserNotFound, http.StatusNotFound, CodeNotFound},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised,
// wrapped or not, becomes a 500 with a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return NewHTTPError(c.status, c.err.Error(), c.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, MsgServerError, CodeInternal)
}

// IsInternal reports whether err would be answered with a 500.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusInternalServerError
}
