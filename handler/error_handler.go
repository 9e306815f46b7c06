package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/cgmportal/pkg/binder"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/requestid"
	"github.com/dmitrymomot/cgmportal/pkg/validator"
)

// DefaultErrorMessage is shown when an error carries nothing safe to display.
const DefaultErrorMessage = "Something went wrong. Please try again."

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// Notifier shows message to the user behind ctx. It reports false when
// the message could not be delivered.
type Notifier func(ctx Context, message string) bool

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders full error page for regular HTTP requests
	ErrorPage func(ErrorPageParams) templ.Component

	// Notify reports errors of DataStar requests as an on-screen notification
	Notify Notifier
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError analyzes the error and returns structured error information
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    DefaultErrorMessage,
	}

	var (
		publicErr PublicError
		httpErr   HTTPError
	)
	switch {
	case errors.As(err, &publicErr):
		info.StatusCode = publicErr.Code
		info.Message = publicErr.Message
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message()
	case errors.Is(err, binder.ErrRequestTooLarge):
		info.StatusCode = http.StatusRequestEntityTooLarge
		info.Message = "The submitted data is too large"
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Message = "Unsupported request format"
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidPath), errors.Is(err, binder.ErrInvalidQuery):
		info.StatusCode = http.StatusBadRequest
		info.Message = "The submitted data could not be read"
	}

	// Validation errors override everything else
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = verrs.First().Text()
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.StatusCode(info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

// renderDataStarResponse hands the message to the notifier. The request
// itself is answered with 204 unless an SSE stream is already open.
func renderDataStarResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, log *slog.Logger) {
	r := ctx.Request()
	if cfg.Notify != nil && cfg.Notify(ctx, info.Message) {
		if !sseStarted(r) {
			ctx.ResponseWriter().WriteHeader(http.StatusNoContent)
		}
		return
	}

	log.Warn("error notification not delivered",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Component("error_handler"),
	)
	if !sseStarted(r) {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
	}
}

// renderHTTPResponse renders error as full HTTP error page
func renderHTTPResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, log *slog.Logger) {
	requestID := requestid.FromContext(ctx.Request().Context())
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})

	w := ctx.ResponseWriter()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	if err := component.Render(ctx.Request().Context(), w); err != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_page"),
		)
	}
}

// NewErrorHandler creates the default error handler that adapts to request type.
// For regular HTTP requests, it renders a full error page.
// For DataStar requests, it raises a single notification through cfg.Notify.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		logError(log, ctx, err, info)

		if IsDataStar(ctx.Request()) {
			renderDataStarResponse(ctx, cfg, info, log)
			return
		}
		renderHTTPResponse(ctx, cfg, info, log)
	}
}
