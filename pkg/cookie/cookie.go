package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const minSecretLength = 32

// Manager writes HttpOnly cookies and, when given secrets, signs them with
// HMAC-SHA256. The first secret signs; every secret verifies, so a new
// secret can be prepended while old cookies stay valid.
type Manager struct {
	secrets  [][]byte
	defaults Attributes
}

// New creates a Manager. secrets may be empty, in which case the signed
// methods fail with ErrNotSigning.
func New(secrets []string, opts ...Option) (*Manager, error) {
	m := &Manager{
		defaults: Attributes{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}.with(opts),
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		m.secrets = append(m.secrets, []byte(s))
	}
	return m, nil
}

// ParseSecrets splits a comma separated list, dropping blanks.
func ParseSecrets(list string) []string {
	var out []string
	for s := range strings.SplitSeq(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Signing reports whether the Manager has secrets.
func (m *Manager) Signing() bool {
	return len(m.secrets) > 0
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	a := m.defaults.with(opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.Path,
		Domain:   a.Domain,
		MaxAge:   a.MaxAge,
		Secure:   a.Secure,
		HttpOnly: a.HttpOnly,
		SameSite: a.SameSite,
	})
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && c.Value == "") {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie in the browser.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	m.Set(w, name, "", WithMaxAge(-1))
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	if !m.Signing() {
		return ErrNotSigning
	}
	m.Set(w, name, m.sign(value), opts...)
	return nil
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if !m.Signing() {
		return "", ErrNotSigning
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(raw)
}

func (m *Manager) mac(secret []byte, value string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(value))
	return h.Sum(nil)
}

// sign encodes value and signature as base64url(value).base64url(mac).
func (m *Manager) sign(value string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(value)) + "." + enc.EncodeToString(m.mac(m.secrets[0], value))
}

func (m *Manager) verify(signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if subtle.ConstantTimeCompare(sig, m.mac(secret, string(value))) == 1 {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}
