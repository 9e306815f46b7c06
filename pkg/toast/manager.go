package toast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cgmportal/pkg/logger"
)

type entry struct {
	notification Notification
	handle       Handle
	timer        Timer
}

// Manager shows at most one notification at a time on a Port.
// All methods are safe for concurrent use; calls are serialized so that
// eviction of the previous notification always precedes insertion of the next.
type Manager struct {
	port    Port
	clock   Clock
	logger  *slog.Logger
	newID   func() string
	current *entry
	closed  bool
	mu      sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for timestamps and auto-dismiss timers.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithLogger sets the logger for the Manager.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithIDGenerator overrides notification id generation.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewManager creates a manager drawing on port.
// A nil port means no host document is available and every call is a no-op.
func NewManager(port Port, opts ...Option) *Manager {
	m := &Manager{
		port:   port,
		clock:  SystemClock(),
		logger: slog.Default(),
		newID:  func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Notify replaces whatever notification is visible with a new one and
// schedules its removal. Unrecognized severities are shown as info.
// Nothing is returned: failures are logged and swallowed.
func (m *Manager) Notify(ctx context.Context, message string, severity Severity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.port == nil {
		return
	}

	m.evictLocked(ctx)

	if !m.port.HasStyle(StyleID) {
		if err := m.port.InsertStyle(ctx, StyleID, Stylesheet); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to insert notification stylesheet",
				logger.Component("toast"),
				logger.Error(err),
			)
		}
	}

	sev := severity.Normalize()
	n := Notification{
		ID:           m.newID(),
		Message:      message,
		Severity:     sev,
		DismissAfter: sev.DismissAfter(),
		CreatedAt:    m.clock.Now(),
	}

	h, err := m.port.Render(ctx, n)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to render notification",
			logger.Component("toast"),
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
		return
	}

	e := &entry{notification: n, handle: h}
	e.timer = m.clock.AfterFunc(n.DismissAfter, func() { m.expire(e) })
	m.current = e
}

// Dismiss removes the visible notification if its id matches.
// It reports whether anything was removed; stale ids are ignored.
func (m *Manager) Dismiss(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.notification.ID != id {
		return false
	}
	m.evictLocked(ctx)
	return true
}

// Current returns the visible notification, if any.
func (m *Manager) Current() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Notification{}, false
	}
	return m.current.notification, true
}

// Reset forgets the visible notification without touching the port.
// Use it when the host document was replaced and the node no longer exists.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.timer.Stop()
		m.current = nil
	}
}

// ResetPort dismisses the visible notification and runs reset while holding
// the manager lock, so no Notify can land between the two. reset is meant
// to clear the port and must not call back into the Manager.
func (m *Manager) ResetPort(ctx context.Context, reset func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.port != nil {
		m.evictLocked(ctx)
	}
	if reset != nil {
		reset()
	}
}

// Close stops the pending timer. Later calls to Notify do nothing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.timer.Stop()
		m.current = nil
	}
	m.closed = true
}

// Must be called with lock held.
func (m *Manager) evictLocked(ctx context.Context) {
	prev := m.current
	if prev == nil {
		return
	}
	m.current = nil
	prev.timer.Stop()

	if err := m.port.Dismiss(ctx, prev.handle); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to remove notification",
			logger.Component("toast"),
			logger.NotificationID(prev.notification.ID),
			logger.Error(err),
		)
	}
}

// expire runs on the timer goroutine. It only acts on the notification it
// was scheduled for, so superseded timers are inert.
func (m *Manager) expire(e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != e {
		return
	}
	m.evictLocked(context.Background())
}
