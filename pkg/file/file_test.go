package file_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/file"
)

func TestValidateExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  []byte
		maxBytes int64
		wantErr  error
	}{
		{"csv accepted", "libre.csv", libreCSV, 1 << 20, nil},
		{"upper case extension", "DEXCOM.CSV", libreCSV, 1 << 20, nil},
		{"xlsx accepted", "export.xlsx", []byte("PK\x03\x04"), 1 << 20, nil},
		{"no size limit", "libre.csv", libreCSV, 0, nil},
		{"too large", "libre.csv", libreCSV, 10, file.ErrFileTooLarge},
		{"empty", "libre.csv", nil, 1 << 20, file.ErrEmptyFile},
		{"wrong extension", "photo.png", []byte("\x89PNG"), 1 << 20, file.ErrExtensionNotAllowed},
		{"no extension", "README", []byte("x"), 1 << 20, file.ErrExtensionNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fh := fileHeader(t, tt.filename, tt.content)
			err := file.ValidateExport(fh, tt.maxBytes, file.DefaultExtensions)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, file.ValidateExport(nil, 1, nil), file.ErrNilFileHeader)
	})

	t.Run("empty allow list accepts anything", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "photo.png", []byte("\x89PNG"))
		assert.NoError(t, file.ValidateExport(fh, 0, nil))
	})
}

func TestGetMIMEType(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "libre.csv", libreCSV)
	mimeType, err := file.GetMIMEType(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mimeType, "text/plain"), mimeType)

	_, err = file.GetMIMEType(nil)
	assert.ErrorIs(t, err, file.ErrNilFileHeader)
}

func TestKeyAndSanitize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uploads/s1/u1/libre.csv", file.Key("s1", "u1", "../../libre.csv"))
	assert.Equal(t, "uploads/s1/u1/unnamed", file.Key("s1", "u1", ""))
	assert.Equal(t, "data.csv", file.SanitizeFilename(`C:\exports\data.csv`))
	assert.Equal(t, "ab.csv", file.SanitizeFilename("a\x00b.csv"))
	assert.Equal(t, ".csv", file.GetExtension(fileHeader(t, "A.CSV", libreCSV)))
	assert.Empty(t, file.GetExtension(nil))
}
