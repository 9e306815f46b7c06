package toast

import "time"

// Severity selects the visual style and lifetime of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	// DefaultDismissAfter applies to info, success and unrecognized severities.
	DefaultDismissAfter = 3 * time.Second
	// ErrorDismissAfter keeps error notifications on screen longer.
	ErrorDismissAfter = 5 * time.Second
)

// Normalize maps unrecognized severities to SeverityInfo.
func (s Severity) Normalize() Severity {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityError:
		return s
	default:
		return SeverityInfo
	}
}

// DismissAfter returns how long a notification of this severity stays visible.
func (s Severity) DismissAfter() time.Duration {
	if s.Normalize() == SeverityError {
		return ErrorDismissAfter
	}
	return DefaultDismissAfter
}

// Role returns the ARIA role used for the rendered element.
func (s Severity) Role() string {
	if s.Normalize() == SeverityError {
		return "alert"
	}
	return "status"
}
