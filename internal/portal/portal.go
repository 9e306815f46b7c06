package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/binder"
	"github.com/dmitrymomot/cgmportal/pkg/dexa"
	"github.com/dmitrymomot/cgmportal/pkg/file"
	"github.com/dmitrymomot/cgmportal/pkg/httpserver"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/ratelimit"
	"github.com/dmitrymomot/cgmportal/pkg/requestid"
	"github.com/dmitrymomot/cgmportal/pkg/session"
	"github.com/dmitrymomot/cgmportal/pkg/targets"
	"github.com/dmitrymomot/cgmportal/pkg/toast"
)

// Deps are the collaborators of a Portal. Store, Storage and Targets are
// required.
type Deps struct {
	Config  Config
	Logger  *slog.Logger
	Store   store.Store
	Storage file.Storage
	Targets *targets.Table

	// Clock drives notification timers. Defaults to the system clock.
	Clock toast.Clock
	// Now returns the current time for records and date checks.
	Now func() time.Time
	// NewID generates upload ids. Defaults to uuid.NewString.
	NewID func() string
	// Checks are added to the /healthz readiness probe.
	Checks []httpserver.Check
	// Sessions overrides the session manager built from Config.Session.
	Sessions *session.Manager
	// UploadLimits holds upload rate buckets. Defaults to process memory.
	UploadLimits ratelimit.Store
}

// Portal serves the CGM portal UI.
type Portal struct {
	cfg      Config
	log      *slog.Logger
	store    store.Store
	storage  file.Storage
	targets  *targets.Table
	now      func() time.Time
	newID    func() string
	checks   []httpserver.Check
	sessions *session.Manager
	states   *Registry
	uploads  *ratelimit.Limiter
	modals   map[string]modal
	onError  handler.ErrorHandler[handler.Context]
}

// New creates a Portal from deps.
func New(deps Deps) (*Portal, error) {
	cfg := deps.Config.withDefaults()

	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	sessions := deps.Sessions
	if sessions == nil {
		var err error
		if sessions, err = session.New(cfg.Session, session.WithLogger(log)); err != nil {
			return nil, fmt.Errorf("session manager: %w", err)
		}
	}

	p := &Portal{
		cfg:      cfg,
		log:      log,
		store:    deps.Store,
		storage:  deps.Storage,
		targets:  deps.Targets,
		now:      now,
		newID:    newID,
		checks:   deps.Checks,
		sessions: sessions,
		uploads: ratelimit.New(cfg.UploadRate,
			ratelimit.WithClock(now),
			ratelimit.WithStore(deps.UploadLimits),
		),
	}

	stateOpts := StateOptions{
		EventsBuffer: cfg.EventsBuffer,
		Clock:        deps.Clock,
		Logger:       log.With(logger.Component("toast")),
	}
	p.states = NewRegistry(cfg.MaxSessions, func(id string) *State {
		return NewState(id, stateOpts)
	}, log)
	p.modals = p.registerModals()
	p.onError = handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: errorPageView,
		Notify:    notifyError,
	})

	return p, nil
}

// notifyError reports a failed DataStar request in the session's page.
func notifyError(ctx handler.Context, message string) bool {
	st, ok := StateFromContext(ctx.Request().Context())
	if !ok {
		return false
	}
	st.Notify(ctx, message, toast.SeverityError)
	return true
}

// Router returns the HTTP handler of the portal.
func (p *Portal) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		requestLogger(p.log),
		middleware.Recoverer,
	)

	r.Get("/healthz", httpserver.HealthCheckHandler(p.log, p.healthChecks()...))

	ui, api := p.onError, p.apiError
	r.Get("/qr.png", route(ui, p.qrCode))
	r.Group(func(r chi.Router) {
		r.Use(p.sessions.Middleware, stateMiddleware(p.states))

		r.Get("/", route(ui, p.index))
		r.Get("/events", route(ui, p.events))
		r.Post("/uploads", route(ui, p.upload,
			handler.WithBinder[handler.Context, uploadRequest](binder.Form(
				binder.WithMaxBytes(p.cfg.Storage.MaxBytes+multipartOverhead),
			)),
		))
		r.Post("/toasts/{id}/dismiss", route(ui, p.dismiss,
			handler.WithBinder[handler.Context, dismissRequest](binder.Path()),
		))
		r.Post("/modals/close", route(ui, p.closeModal))
		r.Post("/modals/{name}", route(ui, p.openModal,
			handler.WithBinder[handler.Context, modalRequest](binder.Path()),
		))
		r.Get("/dexa", route(ui, p.dexaForm))
		r.Post("/dexa", route(ui, p.saveDexa,
			handler.WithBinder[handler.Context, dexa.Inputs](binder.Form()),
		))

		r.Route("/api", func(r chi.Router) {
			r.Get("/targets", route(api, p.targetTable))
			r.Get("/targets/classify", route(api, p.classify,
				handler.WithBinder[handler.Context, classifyRequest](binder.Query()),
			))
			r.Get("/uploads", route(api, p.recentUploads))
		})
	})

	return r
}

// multipartOverhead is allowed on top of the file size limit for the
// multipart framing of an upload.
const multipartOverhead = 1 << 20

func route[R any](
	eh handler.ErrorHandler[handler.Context],
	h handler.HandlerFunc[handler.Context, R],
	opts ...handler.WrapOption[handler.Context, R],
) http.HandlerFunc {
	opts = append([]handler.WrapOption[handler.Context, R]{
		handler.WithErrorHandler[handler.Context, R](eh),
	}, opts...)
	return handler.Wrap(h, opts...)
}

// apiError answers failed /api requests with the JSON error envelope.
func (p *Portal) apiError(ctx handler.Context, err error) {
	switch {
	case errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidPath):
		err = handler.NewPublicError(http.StatusBadRequest, "Invalid request parameters", err)
	case errors.Is(err, targets.ErrUnknownMetric):
		err = handler.NewPublicError(http.StatusNotFound, "Unknown metric", err)
	}

	resp := handler.JSONError(err)
	r := ctx.Request()
	p.log.WarnContext(r.Context(), "api request failed",
		logger.Error(err),
		slog.String("path", r.URL.Path),
		logger.Component("api"),
	)
	if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
		p.log.ErrorContext(r.Context(), "failed to write api error", logger.Error(rerr))
	}
}

func (p *Portal) healthChecks() []httpserver.Check {
	checks := []httpserver.Check{
		{Name: "store", Fn: p.store.Ping},
		{Name: "storage", Fn: p.storage.Ping},
	}
	return append(checks, p.checks...)
}

// Lookup returns the live state of session id.
func (p *Portal) Lookup(id string) (*State, bool) {
	return p.states.Lookup(id)
}

// Sessions returns the number of live session states.
func (p *Portal) Sessions() int {
	return p.states.Len()
}

// Close stops every session's timers and event streams.
func (p *Portal) Close() {
	p.states.Close()
}

// state returns the session state of ctx. The state middleware guarantees
// it for every session route.
func state(ctx context.Context) *State {
	st, ok := StateFromContext(ctx)
	if !ok {
		panic("portal: session state missing from request context")
	}
	return st
}
