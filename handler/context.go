package handler

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// Context wraps http.Request and http.ResponseWriter with context.Context.
// It embeds the request's context and provides access to HTTP components.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SSE() *datastar.ServerSentEventGenerator
}

var sseKey = NewContextKey("sse")

type sseHolder struct {
	once    sync.Once
	sse     *datastar.ServerSentEventGenerator
	created atomic.Bool
}

func (h *sseHolder) started() bool {
	return h.created.Load()
}

// NewContext creates a new Context from HTTP request and response writer.
// The SSE generator of a DataStar request is opened on first use, so a
// handler can still answer with a plain status code.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	if _, ok := r.Context().Value(sseKey).(*sseHolder); !ok {
		r = r.WithContext(context.WithValue(r.Context(), sseKey, &sseHolder{}))
	}
	return &httpContext{w: w, r: r}
}

// httpContext is the default implementation of Context.
type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request {
	return c.r
}

func (c *httpContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// SSE returns the request's generator, or nil for non-DataStar requests.
func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if !IsDataStar(c.r) {
		return nil
	}
	return NewSSE(c.w, c.r)
}

// Delegate context.Context methods to the request's context
func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *httpContext) Err() error {
	return c.r.Context().Err()
}

func (c *httpContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// ContextKey is a context key that cannot collide with other packages.
type ContextKey struct{ name string }

func (c *ContextKey) String() string {
	return c.name
}

// NewContextKey creates a key; name only shows up when debugging.
func NewContextKey(name string) *ContextKey {
	return &ContextKey{name}
}

// ContextValueOK returns the value stored under key when it has type T.
//
//	st, ok := handler.ContextValueOK[*portal.State](ctx, stateKey)
func ContextValueOK[T any](ctx context.Context, key any) (T, bool) {
	val, ok := ctx.Value(key).(T)
	return val, ok
}
