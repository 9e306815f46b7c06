package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/file"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	storage, err := file.NewLocalStorage(dir, "/files")
	require.NoError(t, err)

	t.Run("save exists delete", func(t *testing.T) {
		fh := fileHeader(t, "libre.csv", libreCSV)
		key := file.Key("session", "upload-1", fh.Filename)

		f, err := storage.Save(ctx, fh, key)
		require.NoError(t, err)
		assert.Equal(t, "libre.csv", f.Filename)
		assert.Equal(t, key, f.Key)
		assert.Equal(t, int64(len(libreCSV)), f.Size)
		assert.Equal(t, ".csv", f.Extension)
		assert.Equal(t, "/files/"+key, f.URL)

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
		require.NoError(t, err)
		assert.Equal(t, libreCSV, data)

		assert.True(t, storage.Exists(ctx, key))
		require.NoError(t, storage.Delete(ctx, key))
		assert.False(t, storage.Exists(ctx, key))
		assert.ErrorIs(t, storage.Delete(ctx, key), file.ErrFileNotFound)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		fh := fileHeader(t, "libre.csv", libreCSV)
		_, err := storage.Save(ctx, fh, "../outside.csv")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		assert.False(t, storage.Exists(ctx, "../outside.csv"))
		assert.ErrorIs(t, storage.Delete(ctx, ""), file.ErrInvalidPath)
	})

	t.Run("nil header", func(t *testing.T) {
		_, err := storage.Save(ctx, nil, "x.csv")
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		fh := fileHeader(t, "libre.csv", libreCSV)
		_, err := storage.Save(cctx, fh, "uploads/cancel/libre.csv")
		assert.ErrorIs(t, err, file.ErrOperationCanceled)
		assert.False(t, storage.Exists(ctx, "uploads/cancel/libre.csv"), "partial file removed")
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, storage.Ping(ctx))
	})
}

func TestLocalStorage_NoBaseURL(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, storage.URL("uploads/a.csv"))

	_, err = file.NewLocalStorage("", "")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := file.New(context.Background(), file.Config{Driver: file.DriverLocal, LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.LocalStorage{}, s)

	_, err = file.New(context.Background(), file.Config{Driver: "ftp"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	_, err = file.New(context.Background(), file.Config{Driver: file.DriverS3})
	assert.ErrorIs(t, err, file.ErrInvalidConfig, "bucket is required")
}
