package session

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cgmportal/pkg/logger"
)

// Manager issues and resolves session identifiers.
type Manager struct {
	config    Config
	transport Transport
	newID     func() string
	logger    *slog.Logger
}

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithTransport sets a custom session transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithIDGenerator overrides identifier generation. Generated values must
// parse as UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
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

// New creates a Manager. Without WithTransport it uses a cookie named
// cfg.CookieName, signed with cfg.Secrets.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultConfig().CookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultConfig().MaxAge
	}

	m := &Manager{
		config: cfg,
		newID:  func() string { return uuid.New().String() },
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		t, err := NewCookieTransport(cfg)
		if err != nil {
			return nil, err
		}
		m.transport = t
	}
	return m, nil
}

// Lookup returns the valid session identifier carried by r.
func (m *Manager) Lookup(r *http.Request) (string, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", ErrInvalidSession
	}
	return token, nil
}

// Ensure returns the session identifier of r, issuing a new one when the
// request has none or an invalid one. The bool reports a new session.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	if id, err := m.Lookup(r); err == nil {
		return id, false, nil
	}

	id := m.newID()
	if err := m.transport.SetToken(w, id, m.config.MaxAge); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Clear removes the session identifier from the client.
func (m *Manager) Clear(w http.ResponseWriter) error {
	return m.transport.ClearToken(w)
}

// Middleware makes sure every request carries a session and stores its
// identifier in the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, isNew, err := m.Ensure(w, r)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "failed to issue session",
				logger.Component("session"),
				logger.Error(err),
			)
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		if isNew {
			m.logger.DebugContext(r.Context(), "session issued",
				logger.Component("session"),
				logger.SessionID(id),
			)
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id, isNew)))
	})
}
