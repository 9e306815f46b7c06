package handler

import "net/http"

type errorResponse struct {
	err error
}

// Render hands the error back to Wrap, which passes it to the error handler.
func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error creates a response that fails with err. The configured error
// handler decides how the failure is shown.
//
// Example:
//
//	if err := file.ValidateExport(req.File, maxBytes, allowed); err != nil {
//		return handler.Error(handler.NewPublicError(http.StatusBadRequest, "Unsupported file type", err))
//	}
func Error(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return errorResponse{err: err}
}
