package targets

import "errors"

var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrInvalidTable  = errors.New("invalid target table")
	ErrInvalidRange  = errors.New("invalid target range")
)
