package portal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/session"
)

var stateKey = handler.NewContextKey("portal_state")

// WithState stores the session state in ctx.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey, s)
}

// StateFromContext returns the session state attached by the state middleware.
func StateFromContext(ctx context.Context) (*State, bool) {
	return handler.ContextValueOK[*State](ctx, stateKey)
}

// stateMiddleware resolves the State of the request's session. It must run
// after the session middleware.
func stateMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.IDFromContext(r.Context())
			if !ok {
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), reg.Get(id))))
		})
	}
}

// requestLogger logs one line per request. The /events stream is logged
// when it ends, like any other request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				logger.StatusCode(status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
				logger.Component("http"),
			)
		})
	}
}
