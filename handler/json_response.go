package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/cgmportal/pkg/validator"
)

// JSONResponse is the envelope of every /api answer. Exactly one of Data
// and Error is set.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the error half of the envelope. Details lists messages
// per field for validation failures.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(j.body); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err := w.Write(buf.Bytes())
	return err
}

// JSONOption adjusts a JSON response after its body is built.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(j *jsonResponse) { j.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(j *jsonResponse) { j.body.Meta = meta }
}

// JSON wraps v in the envelope with status 200. An error value is sent
// as JSONError would send it.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	j := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	return j.apply(opts)
}

// JSONError answers with an error envelope. err is an error or an
// *ErrorDetail; the status follows from the error and defaults to 500.
// Only public messages reach the client.
func JSONError(err any, opts ...JSONOption) Response {
	j := &jsonResponse{status: http.StatusInternalServerError}
	switch e := err.(type) {
	case *ErrorDetail:
		j.body.Error = e
	case error:
		j.status, j.body.Error = describeError(e)
	}
	return j.apply(opts)
}

func (j *jsonResponse) apply(opts []JSONOption) *jsonResponse {
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func describeError(err error) (int, *ErrorDetail) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		details := make(map[string][]string)
		for _, field := range verrs.Fields() {
			details[field] = verrs.Get(field)
		}
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: verrs.First().Text(),
			Details: details,
		}
	}

	var publicErr PublicError
	if errors.As(err, &publicErr) {
		code := strings.ReplaceAll(strings.ToLower(http.StatusText(publicErr.Code)), " ", "_")
		return publicErr.Code, &ErrorDetail{Code: code, Message: publicErr.Message}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: httpErr.Message()}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
