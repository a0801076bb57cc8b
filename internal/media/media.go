// Package media classifies files found on the device and builds scan
// filters from filename heuristics. Camera apps encode the capture date in
// the filename (IMG_20250118_..., PXL_20240908_...), which lets filtering
// happen during the scan without pulling any bytes.
package media

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/iautotransfer/iautotransfer/internal/model"
)

// Filter kinds accepted by NewFilter
const (
	KindAll    = "all"
	KindPhotos = "photos"
	KindVideos = "videos"
)

var photoExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".heic": {}, ".png": {}, ".raw": {}, ".dng": {},
}

var videoExtensions = map[string]struct{}{
	".mov": {}, ".mp4": {}, ".avi": {}, ".hevc": {}, ".m4v": {}, ".3gp": {},
}

// Filename prefixes used by camera apps, followed by YYYY[MM[DD]]
var dateRe = regexp.MustCompile(`(?:IMG|VID|PXL|MOV|DSC|CIMG)?[_-]?([12]\d{3})(\d{2})?(\d{2})?`)

// Kind returns the media kind for a filename, or false when the extension
// is not a known media type
func Kind(name string) (model.MediaKind, bool) {
	ext := strings.ToLower(path.Ext(name))
	if _, ok := photoExtensions[ext]; ok {
		return model.MediaKindPhoto, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return model.MediaKindVideo, true
	}
	return "", false
}

// IsMedia reports whether the filename has a known media extension
func IsMedia(name string) bool {
	_, ok := Kind(name)
	return ok
}

// GuessYearMonth extracts a year and month from the filename. Month is 0
// when absent or out of range; year is 0 when no date pattern matches.
func GuessYearMonth(name string) (year, month int) {
	m := dateRe.FindStringSubmatch(strings.ToUpper(name))
	if m == nil {
		return 0, 0
	}

	year, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		if mm, err := strconv.Atoi(m[2]); err == nil && mm >= 1 && mm <= 12 {
			month = mm
		}
	}
	return year, month
}

// Filter restricts a scan by media kind and filename date. Zero Year/Month
// mean no date restriction.
type Filter struct {
	Kind  string // all, photos or videos
	Year  int
	Month int
}

// NewFilter normalizes the kind string and returns a Filter
func NewFilter(kind string, year, month int) Filter {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != KindPhotos && kind != KindVideos {
		kind = KindAll
	}
	return Filter{Kind: kind, Year: year, Month: month}
}

// Match reports whether the remote path passes the filter. A date filter
// rejects files whose name carries no parseable date.
func (f Filter) Match(remotePath string) bool {
	name := path.Base(remotePath)

	kind, ok := Kind(name)
	if !ok {
		return false
	}
	if f.Kind == KindPhotos && kind != model.MediaKindPhoto {
		return false
	}
	if f.Kind == KindVideos && kind != model.MediaKindVideo {
		return false
	}

	if f.Year == 0 && f.Month == 0 {
		return true
	}

	year, month := GuessYearMonth(name)
	if f.Year != 0 && year != f.Year {
		return false
	}
	if f.Month != 0 && month != f.Month {
		return false
	}
	return true
}

// Classify builds a MediaFile from a remote path and size. The second
// return value is false for non-media files.
func Classify(remotePath string, size int64) (model.MediaFile, bool) {
	name := path.Base(remotePath)
	kind, ok := Kind(name)
	if !ok {
		return model.MediaFile{}, false
	}

	year, month := GuessYearMonth(name)
	return model.MediaFile{
		RemotePath: remotePath,
		Size:       size,
		Kind:       kind,
		Year:       year,
		Month:      month,
	}, true
}

// Summarize aggregates counts and bytes over scanned files
func Summarize(files []model.MediaFile) model.ScanSummary {
	var s model.ScanSummary
	for _, f := range files {
		s.Total++
		s.TotalBytes += f.Size
		switch f.Kind {
		case model.MediaKindPhoto:
			s.Photos++
		case model.MediaKindVideo:
			s.Videos++
		}
	}
	return s
}
