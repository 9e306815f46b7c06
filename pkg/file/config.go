package file

import (
	"context"
	"fmt"
	"time"
)

// Drivers accepted by Config.Driver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the upload storage backend.
type Config struct {
	Driver            string        `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir          string        `env:"STORAGE_LOCAL_DIR" envDefault:"./data/uploads"`
	BaseURL           string        `env:"STORAGE_BASE_URL"`
	UploadTimeout     time.Duration `env:"STORAGE_UPLOAD_TIMEOUT" envDefault:"60s"`
	MaxBytes          int64         `env:"UPLOAD_MAX_BYTES" envDefault:"20971520"`
	AllowedExtensions []string      `env:"UPLOAD_ALLOWED_EXTENSIONS" envDefault:".csv,.txt,.json,.xml,.xlsx" envSeparator:","`

	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"S3_SECRET_KEY"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// New builds the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		var localOpts []LocalOption
		if cfg.UploadTimeout > 0 {
			localOpts = append(localOpts, WithLocalUploadTimeout(cfg.UploadTimeout))
		}
		s, err := NewLocalStorage(cfg.LocalDir, cfg.BaseURL, localOpts...)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverS3:
		if cfg.UploadTimeout > 0 {
			opts = append([]S3Option{WithS3UploadTimeout(cfg.UploadTimeout)}, opts...)
		}
		s, err := NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
