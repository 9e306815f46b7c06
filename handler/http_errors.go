package handler

import "net/http"

// HTTPError represents an HTTP error with status code and a stable key.
// The Key is what clients and logs see; Message returns the text shown
// to a person.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Stable error key (e.g., "not_found")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// Message returns the standard status text for the error code.
func (e HTTPError) Message() string {
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return e.Key
}

// 4xx Client Errors
var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrConflict              = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code and key.
//
// Example:
//
//	err := handler.NewHTTPError(http.StatusNotFound, "modal_not_found")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// PublicError is an error whose Message is safe to show to the user.
// Err keeps the underlying cause for logs.
type PublicError struct {
	Code    int
	Message string
	Err     error
}

// NewPublicError creates a PublicError. A zero code means 500.
func NewPublicError(code int, message string, err error) PublicError {
	if code == 0 {
		code = http.StatusInternalServerError
	}
	return PublicError{Code: code, Message: message, Err: err}
}

func (e PublicError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e PublicError) Unwrap() error {
	return e.Err
}
