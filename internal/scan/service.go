// Package scan enumerates the device's DCIM tree over a single AFC session
// and reports device info, matched media files and totals.
package scan

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/media"
	"github.com/iautotransfer/iautotransfer/internal/model"
)

// DCIMRoot is where iOS keeps camera media
const DCIMRoot = "/DCIM"

// Progress heartbeat granularity while walking the tree
const progressTickEvery = 100

// Result is everything a scan produces
type Result struct {
	Device  model.DeviceInfo
	Files   []model.MediaFile
	Summary model.ScanSummary
}

// Scanner walks the DCIM tree. One scan uses one AFC session.
type Scanner struct {
	dialer device.Dialer

	onProgress func(filesSeen int) // heartbeat, every ~100 files
	onLog      func(msg string)
}

// NewScanner creates a scanner over the given dialer
func NewScanner(dialer device.Dialer) *Scanner {
	return &Scanner{dialer: dialer}
}

// SetProgressCallback sets the heartbeat callback, invoked with the number
// of files seen so far and once more when the walk completes
func (s *Scanner) SetProgressCallback(callback func(filesSeen int)) {
	s.onProgress = callback
}

// SetLogCallback sets the human-readable log callback
func (s *Scanner) SetLogCallback(callback func(msg string)) {
	s.onLog = callback
}

// Scan enumerates DCIM, applies the filter, and returns device info, the
// matched files, and aggregated totals. Cancelling the context aborts the
// walk between directory entries.
func (s *Scanner) Scan(ctx context.Context, filter media.Filter) (*Result, error) {
	client, err := s.dialer.Dial()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	info, err := client.Info()
	if err != nil {
		return nil, err
	}

	s.logf("Connected: %s (iOS %s)", fallbackName(info), info.ProductVersion)
	if info.Storage.TotalBytes > 0 {
		mb := float64(1024 * 1024)
		s.logf("[storage] used=%.1fMB / total=%.1fMB (%.1f%%)",
			float64(info.Storage.UsedBytes())/mb,
			float64(info.Storage.TotalBytes)/mb,
			info.Storage.PercentUsed())
	} else {
		s.logf("[storage] unable to query filesystem usage")
	}

	files, seen, err := s.walk(ctx, client, filter)
	if err != nil {
		return nil, err
	}

	s.progress(seen)

	return &Result{
		Device:  info,
		Files:   files,
		Summary: media.Summarize(files),
	}, nil
}

// walk iterates the DCIM tree without recursion. Unreadable entries are
// logged and skipped, matching how flaky AFC stats behave in practice.
func (s *Scanner) walk(ctx context.Context, client device.Client, filter media.Filter) ([]model.MediaFile, int, error) {
	var files []model.MediaFile
	seen := 0

	stack := []string{DCIMRoot}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := client.ListDir(dir)
		if err != nil {
			if dir == DCIMRoot {
				return nil, 0, fmt.Errorf("reading %s: %w", DCIMRoot, err)
			}
			log.Printf("scan: skipping unreadable directory %s: %v", dir, err)
			continue
		}

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, seen, err
			}

			full := path.Join(dir, name)
			fi, err := client.Stat(full)
			if err != nil {
				log.Printf("scan: skipping %s: %v", full, err)
				continue
			}

			if fi.IsDir {
				stack = append(stack, full)
				continue
			}

			seen++
			if seen%progressTickEvery == 0 {
				s.progress(seen)
			}

			if !filter.Match(full) {
				continue
			}
			if f, ok := media.Classify(full, fi.Size); ok {
				files = append(files, f)
			}
		}
	}

	return files, seen, nil
}

func (s *Scanner) progress(filesSeen int) {
	if s.onProgress != nil {
		s.onProgress(filesSeen)
	}
}

func (s *Scanner) logf(format string, args ...any) {
	if s.onLog != nil {
		s.onLog(fmt.Sprintf(format, args...))
	}
}

func fallbackName(info model.DeviceInfo) string {
	if info.Name == "" {
		return "iPhone"
	}
	return info.Name
}
