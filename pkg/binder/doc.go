// Package binder fills typed request structs from HTTP requests.
//
// Binders match the handler.Bind signature and are applied in order by
// handler.Wrap. Each binder only looks at its own struct tag:
//
//	type uploadRequest struct {
//		File *multipart.FileHeader `file:"file"`
//	}
//
//	type dismissRequest struct {
//		ID string `path:"id"`
//	}
//
// Form handles application/x-www-form-urlencoded and multipart/form-data
// bodies through `form` and `file` tags. Path reads chi URL parameters through
// `path` tags. A binder that has nothing to do for a request returns
// ErrBinderNotApplicable, which Wrap skips.
//
// Supported field types are strings, integers, floats, booleans, time.Time
// (RFC 3339 or 2006-01-02), pointers to those, and slices for multi-value
// fields. Uploaded file names are reduced to their base name.
package binder
