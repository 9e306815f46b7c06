package handler_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/pkg/validator"
)

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var got handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("data", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/targets", nil)

		require.NoError(t, handler.JSON(map[string]string{"metric": "tir"}).Render(w, r))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.JSONResponse{
			Data: map[string]any{"metric": "tir"},
		}, decodeJSON(t, w))
	})

	t.Run("encode failure leaves response unwritten", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, string](func(ctx handler.Context, req string) handler.Response {
			return handler.JSON(map[string]float64{"value": math.NaN()})
		})

		var got error
		wrapped := handler.Wrap(h, handler.WithErrorHandler[handler.Context, string](func(ctx handler.Context, err error) {
			got = err
			_ = handler.JSONError(err).Render(ctx.ResponseWriter(), ctx.Request())
		}))

		w := httptest.NewRecorder()
		wrapped(w, httptest.NewRequest(http.MethodGet, "/api/targets/classify", nil))

		var unsupported *json.UnsupportedValueError
		require.ErrorAs(t, got, &unsupported)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, handler.JSONResponse{
			Error: &handler.ErrorDetail{Code: "internal_error", Message: "Internal Server Error"},
		}, decodeJSON(t, w))
	})

	t.Run("status and meta", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		resp := handler.JSON(
			map[string]string{"id": "u1"},
			handler.WithJSONStatus(http.StatusCreated),
			handler.WithJSONMeta(map[string]any{"source": "default"}),
		)
		require.NoError(t, resp.Render(w, r))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, handler.JSONResponse{
			Data: map[string]any{"id": "u1"},
			Meta: map[string]any{"source": "default"},
		}, decodeJSON(t, w))
	})

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, handler.JSON(nil).Render(w, r))
		assert.Equal(t, "{}\n", w.Body.String())
	})

	t.Run("error value", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, handler.JSON(errors.New("connection refused")).Render(w, r))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		got := decodeJSON(t, w)
		require.NotNil(t, got.Error)
		assert.Equal(t, "internal_error", got.Error.Code)
		assert.NotContains(t, got.Error.Message, "connection refused")
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, handler.JSONError(handler.NewHTTPError(http.StatusNotFound, "unknown_metric")).Render(w, r))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, &handler.ErrorDetail{
			Code:    "unknown_metric",
			Message: "Not Found",
		}, decodeJSON(t, w).Error)
	})

	t.Run("wrapped http error", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := errors.Join(errors.New("lookup"), handler.ErrNotFound)
		require.NoError(t, handler.JSONError(err).Render(w, r))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeJSON(t, w).Error.Code)
	})

	t.Run("public error", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.NewPublicError(http.StatusBadRequest, "value must be a number", errors.New("strconv"))
		require.NoError(t, handler.JSONError(err).Render(w, r))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, &handler.ErrorDetail{
			Code:    "bad_request",
			Message: "value must be a number",
		}, decodeJSON(t, w).Error)
	})

	t.Run("validation errors", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/dexa", nil)

		verrs := validator.ValidationErrors{
			{Field: "body_fat_pct", Message: "must be between 2 and 70"},
			{Field: "hba1c_pct", Message: "must be between 3 and 20"},
			{Field: "body_fat_pct", Message: "is required"},
		}
		require.NoError(t, handler.JSONError(verrs).Render(w, r))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		got := decodeJSON(t, w).Error
		require.NotNil(t, got)
		assert.Equal(t, "validation_error", got.Code)
		assert.Equal(t, "body_fat_pct: must be between 2 and 70", got.Message)
		assert.Equal(t, map[string][]string{
			"body_fat_pct": {"must be between 2 and 70", "is required"},
			"hba1c_pct":    {"must be between 3 and 20"},
		}, got.Details)
	})

	t.Run("error detail with status override", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		detail := &handler.ErrorDetail{Code: "storage_unavailable", Message: "Try again later"}
		require.NoError(t, handler.JSONError(detail, handler.WithJSONStatus(http.StatusServiceUnavailable)).Render(w, r))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, detail, decodeJSON(t, w).Error)
	})
}
