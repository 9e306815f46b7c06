package validator

import "errors"

// ErrValidationFailed marks any ValidationErrors value for errors.Is checks.
var ErrValidationFailed = errors.New("validation failed")
