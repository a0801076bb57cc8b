package transfer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var manifestHeader = []string{"remote_path", "local_path", "size", "status", "worker", "error", "copied_at"}

// ManifestRow is one line of the transfer manifest
type ManifestRow struct {
	RemotePath string
	LocalPath  string
	Size       int64
	Status     string // copied, skipped or failed
	Worker     int
	Err        string
	CopiedAt   time.Time
}

// ManifestWriter appends transfer outcomes to a CSV file in the
// destination root. Safe for concurrent use by workers.
type ManifestWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer

	// Path is the absolute path of the manifest file
	Path string
}

// CreateManifest creates manifest_YYYYMMDD_HHMMSS.csv in the destination
// root and writes the header row
func CreateManifest(destRoot string) (*ManifestWriter, error) {
	name := "manifest_" + time.Now().Format("20060102_150405") + ".csv"
	full := filepath.Join(destRoot, name)

	file, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("creating manifest: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(manifestHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("writing manifest header: %w", err)
	}

	return &ManifestWriter{file: file, w: w, Path: full}, nil
}

// Append writes one outcome row and flushes it to disk
func (m *ManifestWriter) Append(row ManifestRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := []string{
		row.RemotePath,
		row.LocalPath,
		strconv.FormatInt(row.Size, 10),
		row.Status,
		strconv.Itoa(row.Worker),
		row.Err,
		row.CopiedAt.Format(time.RFC3339),
	}
	if err := m.w.Write(record); err != nil {
		return err
	}
	m.w.Flush()
	return m.w.Error()
}

// Close flushes pending rows and closes the file
func (m *ManifestWriter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.w.Flush()
	if err := m.w.Error(); err != nil {
		m.file.Close()
		return err
	}
	return m.file.Close()
}
