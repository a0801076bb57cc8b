// Package convert turns HEIC stills into JPEGs next to the original,
// preserving the capture timestamp from EXIF when present.
package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/iautotransfer/iautotransfer/internal/platform"
)

// JPEGQuality is the encoder quality for converted files
const JPEGQuality = 92

// Service converts HEIC files. Safe for concurrent use; each conversion
// works on its own file handles.
type Service struct {
	onLog func(msg string)
}

// NewService creates a converter
func NewService() *Service {
	return &Service{}
}

// SetLogCallback sets the human-readable log callback
func (s *Service) SetLogCallback(callback func(msg string)) {
	s.onLog = callback
}

// ConvertHEIC decodes the HEIC at path and writes a JPEG alongside it,
// returning the JPEG path. The output never overwrites an existing file.
// When deleteOriginal is set the source is removed after a successful
// conversion.
func (s *Service) ConvertHEIC(path string, deleteOriginal bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	img, err := goheif.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	outPath := platform.UniquePath(jpegPath(path))
	if err := imaging.Save(img, outPath, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(outPath), err)
	}

	s.applyCaptureTime(f, outPath)

	if deleteOriginal {
		if err := os.Remove(path); err != nil {
			s.logf("could not remove %s: %v", filepath.Base(path), err)
		}
	}

	return outPath, nil
}

// applyCaptureTime stamps the JPEG's mtime with the EXIF capture date so
// photo managers sort converted files correctly. Missing or malformed
// EXIF is not an error.
func (s *Service) applyCaptureTime(src *os.File, outPath string) {
	if _, err := src.Seek(0, 0); err != nil {
		return
	}
	raw, err := goheif.ExtractExif(src)
	if err != nil || len(raw) == 0 {
		return
	}
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return
	}
	taken, err := x.DateTime()
	if err != nil {
		return
	}
	if err := os.Chtimes(outPath, taken, taken); err != nil {
		s.logf("could not set timestamp on %s: %v", filepath.Base(outPath), err)
	}
}

// jpegPath swaps the extension for .jpg
func jpegPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
}

func (s *Service) logf(format string, args ...any) {
	if s.onLog != nil {
		s.onLog(fmt.Sprintf(format, args...))
	}
}
