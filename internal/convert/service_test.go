package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJpegPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/IMG_0001.HEIC", "/tmp/IMG_0001.jpg"},
		{"/tmp/IMG_0001.heic", "/tmp/IMG_0001.jpg"},
		{"/tmp/no_extension", "/tmp/no_extension.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, jpegPath(tt.in))
	}
}

func TestConvertHEIC_MissingInput(t *testing.T) {
	s := NewService()

	_, err := s.ConvertHEIC(filepath.Join(t.TempDir(), "missing.heic"), false)
	assert.Error(t, err)
}

func TestConvertHEIC_GarbageInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_really.heic")
	require.NoError(t, os.WriteFile(path, []byte("this is not a heif container"), 0o644))

	s := NewService()
	_, err := s.ConvertHEIC(path, true)
	assert.Error(t, err)

	// A failed conversion never deletes the source
	assert.FileExists(t, path)
}
