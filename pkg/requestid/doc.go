// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// a proxy and generates a UUID otherwise. The identifier is echoed in the
// response header and stored in the request context, where the logger picks
// it up through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
