// Package logger builds the portal's *slog.Logger.
//
// New creates a text or JSON handler configured by functional options and
// wraps it with LogHandlerDecorator, which pulls request-scoped attributes
// (session id, request id) out of context.Context on every record.
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "Failed to store upload",
//		logger.SessionID(sessionID),
//		logger.Filename(name),
//		logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
