package handler

import (
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType  string
	cacheControl string
	data         []byte
}

func (b blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", b.contentType)
	h.Set("Content-Length", strconv.Itoa(len(b.data)))
	if b.cacheControl != "" {
		h.Set("Cache-Control", b.cacheControl)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(b.data)
	return err
}

// Blob writes data as-is with the given content type, e.g. a generated image.
// A non-empty cacheControl is sent as the Cache-Control header.
func Blob(contentType, cacheControl string, data []byte) Response {
	return blobResponse{contentType: contentType, cacheControl: cacheControl, data: data}
}
