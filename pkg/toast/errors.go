package toast

import "errors"

var (
	ErrRenderFailed        = errors.New("failed to render notification")
	ErrNodeNotFound        = errors.New("notification node not found")
	ErrEmptyStyleID        = errors.New("stylesheet id is empty")
	ErrEmptyNotificationID = errors.New("notification id is empty")
)
