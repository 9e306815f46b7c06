package toast

import "time"

// Notification is a single transient message shown to the user.
type Notification struct {
	ID           string        `json:"id"`
	Message      string        `json:"message"`
	Severity     Severity      `json:"severity"`
	DismissAfter time.Duration `json:"dismiss_after"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Handle identifies a rendered notification inside a Port.
type Handle string

// ElementID returns the DOM id of the element rendered for the notification id.
func ElementID(id string) string {
	return "notification-" + id
}

// HandleFor returns the handle a Document assigns to n.
func HandleFor(n Notification) Handle {
	return Handle(ElementID(n.ID))
}
