package toast

import "context"

// Port is the presentation surface notifications are drawn onto.
// Implementations must be safe for concurrent use.
type Port interface {
	// HasStyle reports whether a stylesheet with the given id is present.
	HasStyle(id string) bool

	// InsertStyle adds a stylesheet definition keyed by id.
	InsertStyle(ctx context.Context, id, css string) error

	// Render inserts the notification at the end of the page body.
	Render(ctx context.Context, n Notification) (Handle, error)

	// Dismiss removes a rendered notification.
	// Dismissing a handle that is no longer present is a no-op.
	Dismiss(ctx context.Context, h Handle) error
}
