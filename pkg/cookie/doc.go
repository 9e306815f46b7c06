// Package cookie writes HttpOnly cookies with shared default attributes and
// optional HMAC-SHA256 signatures.
//
//	m, err := cookie.New(cookie.ParseSecrets(os.Getenv("SESSION_SECRETS")), cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	if err := m.SetSigned(w, "cgm_sid", id); err != nil {
//		return err
//	}
//	id, err := m.GetSigned(r, "cgm_sid") // ErrInvalidSignature on tampering
//
// Secrets must be at least 32 characters. Verification tries every secret,
// so rotating means prepending the new one and dropping the old one after
// the cookie lifetime has passed.
package cookie
