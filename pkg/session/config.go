package session

import "time"

// Config holds session cookie configuration.
type Config struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"cgm_sid"`

	// MaxAge is how long the browser keeps the cookie
	MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`

	// Secrets is a comma separated list of signing keys, newest first.
	// Cookies are unsigned when empty.
	Secrets string `env:"SESSION_SECRETS"`

	// SecureCookies enables the Secure flag (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName: "cgm_sid",
		MaxAge:     30 * 24 * time.Hour,
	}
}
