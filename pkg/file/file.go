package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// File describes a stored upload.
type File struct {
	Filename  string
	Key       string
	Size      int64
	MIMEType  string
	Extension string
	URL       string
}

// Storage persists uploaded files under slash separated keys.
type Storage interface {
	// Save copies the upload to key and returns what was stored.
	Save(ctx context.Context, fh *multipart.FileHeader, key string) (*File, error)
	// Delete removes key. Missing keys return ErrFileNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for key, or "" when files are not served.
	URL(key string) string
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// DefaultExtensions are the CGM export formats accepted by default.
var DefaultExtensions = []string{".csv", ".txt", ".json", ".xml", ".xlsx"}

// Key builds the storage key for an upload. The original name is sanitized
// and kept as the last element so downloads keep a meaningful name.
func Key(sessionID, uploadID, filename string) string {
	return path.Join("uploads", sessionID, uploadID, SanitizeFilename(filename))
}

// GetExtension returns the lower-cased extension including the dot.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(fh.Filename))
}

// ValidateExport checks that the upload is non-empty, within maxBytes and has
// one of the allowed extensions. A non-positive maxBytes disables the size
// check; an empty allowed list accepts every extension.
func ValidateExport(fh *multipart.FileHeader, maxBytes int64, allowed []string) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, fh.Filename)
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, fh.Filename, fh.Size, maxBytes)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, GetExtension(fh)) {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrExtensionNotAllowed, fh.Filename, strings.Join(allowed, ", "))
	}
	return nil
}

// GetMIMEType sniffs the content type from the first 512 bytes.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buffer[:n]), nil
}

func mimeTypeOrDefault(fh *multipart.FileHeader) string {
	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return "application/octet-stream"
	}
	return mimeType
}

// SanitizeFilename strips directory components and NUL bytes.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// cleanKey normalizes a key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return path.Clean(key), nil
}
