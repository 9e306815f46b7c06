package session

import "errors"

var (
	// ErrSessionNotFound indicates the request carries no session identifier
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates the identifier is not a valid session id
	ErrInvalidSession = errors.New("session.invalid")
)
