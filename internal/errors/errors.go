package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when mail or password is missing.
	ErrValidation = errors.New("missing mail or password")
	// ErrConflict is returned when the mail is already linked to an account.
	ErrConflict = errors.New("mail already linked to an account")
	// ErrNotFound is returned when no user has the given mail.
	ErrNotFound = errors.New("user not found")
	// ErrAuth is returned when the password does not match the stored hash.
	ErrAuth = errors.New("incorrect password")
	// ErrInternal wraps store, hasher and infrastructure failures.
	ErrInternal = errors.New("internal error")
	// ErrUserCreation is an internal error raised by the insert step of registration.
	ErrUserCreation = errors.New("error creating user")
)

// Client-facing messages, including the success messages of /register and /login.
const (
	MsgMissingFields     = "Faltan mail o contraseña"
	MsgInvalidBody       = "Cuerpo de la petición inválido"
	MsgMailAlreadyLinked = "El mail ya está vinculado a una cuenta"
	MsgUserNotFound      = "Usuario no encontrado"
	MsgIncorrectPassword = "Contraseña incorrecta"
	MsgInternal          = "Error interno"
	MsgUserCreation      = "Error al crear usuario"
	MsgUserCreated       = "Usuario creado con éxito"
	MsgLoginSuccessful   = "Login exitoso"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
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

// IsInternal reports whether err must be logged server-side rather than shown to the client.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Not-found and wrong-password
// answer 400 rather than 404/401 to stay compatible with existing clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, MsgMissingFields, "MISSING_FIELDS")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, MsgMailAlreadyLinked, "MAIL_ALREADY_LINKED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusBadRequest, MsgUserNotFound, "USER_NOT_FOUND")
	case errors.Is(err, ErrAuth):
		return NewHTTPError(http.StatusBadRequest, MsgIncorrectPassword, "INCORRECT_PASSWORD")
	case errors.Is(err, ErrUserCreation):
		return NewHTTPError(http.StatusInternalServerError, MsgUserCreation, "USER_CREATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, MsgInternal, "INTERNAL_ERROR")
	}
}
