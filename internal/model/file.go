package model

import (
	"path"
)

// MediaKind classifies a media file by extension
type MediaKind string

const (
	// MediaKindPhoto covers still images (JPG, HEIC, PNG, RAW, DNG)
	MediaKindPhoto MediaKind = "photo"

	// MediaKindVideo covers video containers (MOV, MP4, HEVC, M4V, AVI, 3GP)
	MediaKindVideo MediaKind = "video"
)

// MediaFile represents a single media file found on the device during a scan
type MediaFile struct {
	RemotePath string    // absolute path on the device, e.g. /DCIM/100APPLE/IMG_0001.HEIC
	Size       int64     // size in bytes as reported by AFC stat
	Kind       MediaKind // photo or video
	Year       int       // year guessed from the filename, 0 if unknown
	Month      int       // month guessed from the filename (1-12), 0 if unknown
}

// Name returns the base filename of the remote path
func (f MediaFile) Name() string {
	return path.Base(f.RemotePath)
}

// ScanSummary aggregates the result of a device scan
type ScanSummary struct {
	Total      int   // files matched by the scan filter
	Photos     int   // of which photos
	Videos     int   // of which videos
	TotalBytes int64 // combined size of matched files
}
