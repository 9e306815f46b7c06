package binder

import (
	"fmt"
	"net/http"
)

// Query binds `query` tagged fields from the URL query string. Missing
// parameters leave the field untouched.
//
//	type ClassifyRequest struct {
//		Metric string  `query:"metric"`
//		Value  float64 `query:"value"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v, ErrInvalidQuery)
		if err != nil {
			return err
		}
		rt := rv.Type()
		values := r.URL.Query()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}
			name, ok := tagName(fieldType, "query")
			if !ok {
				continue
			}
			vals, present := values[name]
			if !present || len(vals) == 0 {
				continue
			}
			if err := setFieldValue(field, fieldType.Type, vals); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidQuery, name, err)
			}
		}
		return nil
	}
}
