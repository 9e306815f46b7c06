package cookie

import "errors"

var (
	ErrSecretTooShort   = errors.New("cookie.secret_too_short")
	ErrNotSigning       = errors.New("cookie.not_signing")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
	ErrInvalidFormat    = errors.New("cookie.invalid_format")
	ErrCookieNotFound   = errors.New("cookie.not_found")
)
