// Package handler provides type-safe HTTP request handling for the portal.
//
// Handlers are generic functions that receive a bound request value and
// return a Response. Wrap turns them into http.HandlerFunc values usable
// with any router:
//
//	type DismissRequest struct {
//		ID string `path:"id"`
//	}
//
//	func dismiss(ctx handler.Context, req DismissRequest) handler.Response {
//		state.Toasts.Dismiss(ctx, req.ID)
//		return handler.Empty()
//	}
//
//	r.Post("/toasts/{id}/dismiss", handler.Wrap(dismiss,
//		handler.WithBinder[handler.Context, DismissRequest](binder.Path()),
//	))
//
// # Response Types
//
//	handler.JSON(data)                // 200 OK with {"data": ...}
//	handler.JSONError(err)            // status derived from err
//	handler.Templ(component, opts...) // HTML or a DataStar patch
//	handler.Blob("image/png", "", b)  // raw bytes
//	handler.Empty()                   // 204 No Content
//	handler.SSE(fn)                   // long-lived patch stream
//	handler.Error(err)                // hands err to the error handler
//
// # DataStar Integration
//
// Requests sent by the DataStar client (Datastar-Request header or an
// Accept: text/event-stream) are answered with Server-Sent Events. The
// event generator is opened on first use and shared by the request
// Context and every response rendered for the request.
//
// # Error Handling
//
// NewErrorHandler logs the failure and answers according to the request
// type: a full error page for regular requests, a single on-screen
// notification (through ErrorHandlerConfig.Notify) for DataStar requests.
// HTTPError values carry their own status; validator.ValidationErrors map
// to 422 and show the first failed rule.
package handler
