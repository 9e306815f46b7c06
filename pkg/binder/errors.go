package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")
	ErrRequestTooLarge      = errors.New("request body too large")
)
