package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const DefaultMaxMemory = 10 << 20

// FormOption configures the Form binder.
type FormOption func(*formConfig)

type formConfig struct {
	maxMemory int64
	maxBytes  int64
}

// WithMaxBytes caps the request body size. Larger bodies fail with
// ErrRequestTooLarge.
func WithMaxBytes(n int64) FormOption {
	return func(c *formConfig) { c.maxBytes = n }
}

// WithMaxMemory sets the in-memory part of multipart parsing.
func WithMaxMemory(n int64) FormOption {
	return func(c *formConfig) { c.maxMemory = n }
}

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form binds `form` and `file` tagged fields from urlencoded or multipart
// bodies. Requests without a body content type are not applicable.
func Form(opts ...FormOption) func(r *http.Request, v any) error {
	cfg := formConfig{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrBinderNotApplicable
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type", ErrInvalidForm)
		}

		if cfg.maxBytes > 0 && r.ContentLength > cfg.maxBytes {
			return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, cfg.maxBytes)
		}
		if cfg.maxBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBytes)
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return formError(err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
				return formError(err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		case "application/json":
			// Datastar posts its signals as JSON; those requests carry no form.
			return ErrBinderNotApplicable

		default:
			return fmt.Errorf("%w: got %s, expected a form", ErrUnsupportedMediaType, mediaType)
		}

		return bindFormAndFiles(v, values, files)
	}
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

func bindFormAndFiles(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv, err := structValue(v, ErrInvalidForm)
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

		if name, ok := tagName(fieldType, "form"); ok {
			if fieldValues := values[name]; len(fieldValues) > 0 {
				if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, name, err)
				}
			}
		}

		if name, ok := tagName(fieldType, "file"); ok {
			if headers := files[name]; len(headers) > 0 {
				if err := setFileField(field, fieldType.Type, headers); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, name, err)
				}
			}
		}
	}
	return nil
}

func setFileField(field reflect.Value, fieldType reflect.Type, headers []*multipart.FileHeader) error {
	for _, fh := range headers {
		fh.Filename = SanitizeFilename(fh.Filename)
	}

	switch {
	case fieldType == fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
	case fieldType.Kind() == reflect.Slice && fieldType.Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("unsupported type for file field: %v", fieldType)
	}
	return nil
}

// SanitizeFilename strips directory components and NUL bytes from a client
// supplied file name.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = strings.TrimSpace(filename)

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		return "unnamed"
	}
	return filename
}
