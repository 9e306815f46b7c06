package store

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/dexa"
)

// Migrations holds the goose migrations under "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateID  = errors.New("record already exists")
	ErrInvalidInput = errors.New("invalid store input")
)

// Upload records a stored CGM export.
type Upload struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	URL         string    `json:"url,omitempty"`
	Size        int64     `json:"size"`
	MIMEType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the persistence boundary of the portal.
type Store interface {
	CreateUpload(ctx context.Context, u Upload) error
	// ListUploads returns the newest uploads first. A non-positive limit
	// returns all of them.
	ListUploads(ctx context.Context, sessionID string, limit int) ([]Upload, error)
	// LatestUpload returns ErrNotFound when the session has none.
	LatestUpload(ctx context.Context, sessionID string) (Upload, error)
	SaveLabs(ctx context.Context, sessionID string, in dexa.Inputs) error
	// GetLabs returns ErrNotFound when nothing was saved.
	GetLabs(ctx context.Context, sessionID string) (dexa.Inputs, error)
	Ping(ctx context.Context) error
}

func validateUpload(u Upload) error {
	switch {
	case u.ID == "":
		return errors.Join(ErrInvalidInput, errors.New("upload id is required"))
	case u.SessionID == "":
		return errors.Join(ErrInvalidInput, errors.New("session id is required"))
	case u.StoragePath == "":
		return errors.Join(ErrInvalidInput, errors.New("storage path is required"))
	}
	return nil
}
