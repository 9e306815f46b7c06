package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/cgmportal/pkg/logger"
)

type sessionContextKey struct{}

type sessionInfo struct {
	id    string
	isNew bool
}

// WithID adds a session identifier to the context.
func WithID(ctx context.Context, id string, isNew bool) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionInfo{id: id, isNew: isNew})
}

// IDFromContext returns the session identifier stored in ctx.
func IDFromContext(ctx context.Context) (string, bool) {
	info, ok := ctx.Value(sessionContextKey{}).(sessionInfo)
	return info.id, ok && info.id != ""
}

// IsNew reports whether the session in ctx was issued by this request.
func IsNew(ctx context.Context) bool {
	info, _ := ctx.Value(sessionContextKey{}).(sessionInfo)
	return info.isNew
}

// LoggerExtractor returns a logger context extractor adding session_id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return logger.SessionID(id), true
		}
		return slog.Attr{}, false
	}
}
