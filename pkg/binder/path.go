package binder

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds `path` tagged fields from chi URL parameters.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil || len(rctx.URLParams.Keys) == 0 {
			return ErrBinderNotApplicable
		}

		rv, err := structValue(v, ErrInvalidPath)
		if err != nil {
			return err
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}
			name, ok := tagName(fieldType, "path")
			if !ok {
				continue
			}
			value := rctx.URLParam(name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidPath, name, err)
			}
		}
		return nil
	}
}
