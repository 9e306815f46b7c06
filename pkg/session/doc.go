// Package session identifies browser sessions.
//
// A session is an opaque random identifier carried by a cookie. The portal
// has no accounts, so the identifier is all a session is: server-side state
// is keyed by it and lives elsewhere.
//
//	mgr, err := session.New(cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(mgr.Middleware)
//
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		id, _ := session.IDFromContext(r.Context())
//		...
//	})
//
// Identifiers that are missing, malformed or not issued by a UUID generator
// are replaced with a fresh one; the replacement is reported through
// IsNew so callers can tell a first visit from a returning browser. With
// Config.Secrets set the cookie is signed, and a cookie with a bad
// signature counts as missing.
package session
