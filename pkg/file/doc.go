// Package file stores uploaded CGM exports on local disk or in S3 compatible
// object storage.
//
// Storage is the common interface. LocalStorage keeps every object inside a
// base directory and rejects keys that escape it. S3Storage talks to Amazon
// S3, MinIO and similar services through aws-sdk-go-v2; tests substitute the
// S3Client interface.
//
//	store, err := file.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := file.ValidateExport(fh, cfg.MaxBytes, cfg.AllowedExtensions); err != nil {
//		return err
//	}
//	f, err := store.Save(ctx, fh, file.Key(sessionID, uploadID, fh.Filename))
//
// Errors are sentinel values, wrapped with context. S3 API failures are mapped
// onto the same sentinels where a meaningful one exists.
package file
