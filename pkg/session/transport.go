package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/cookie"
)

// Transport defines how session identifiers travel between client and server.
type Transport interface {
	// GetToken extracts the session identifier from the request
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session identifier in the response
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the session identifier from the client
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the identifier in an HttpOnly cookie, signed
// when the Config has secrets.
type CookieTransport struct {
	name    string
	cookies *cookie.Manager
}

// NewCookieTransport creates a cookie transport for cfg.
func NewCookieTransport(cfg Config) (*CookieTransport, error) {
	m, err := cookie.New(cookie.ParseSecrets(cfg.Secrets), cookie.WithSecure(cfg.SecureCookies))
	if err != nil {
		return nil, err
	}
	return &CookieTransport{name: cfg.CookieName, cookies: m}, nil
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	var (
		token string
		err   error
	)
	if t.cookies.Signing() {
		token, err = t.cookies.GetSigned(r, t.name)
	} else {
		token, err = t.cookies.Get(r, t.name)
	}
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return "", ErrSessionNotFound
	case err != nil:
		return "", errors.Join(ErrInvalidSession, err)
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	maxAge := cookie.WithMaxAge(int(ttl.Seconds()))
	if t.cookies.Signing() {
		return t.cookies.SetSigned(w, t.name, token, maxAge)
	}
	t.cookies.Set(w, t.name, token, maxAge)
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}
