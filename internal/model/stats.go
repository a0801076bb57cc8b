package model

import (
	"fmt"
)

// TransferStats is the run-level progress snapshot emitted by the transfer
// controller after every processed file
type TransferStats struct {
	CopiedFiles int   // files copied or skipped so far
	TotalFiles  int   // files queued for this run
	BytesDone   int64 // bytes accounted for so far
	BytesTotal  int64 // bytes queued for this run

	FilesPerSec float64
	BytesPerSec float64
}

// ProgressPercent returns overall progress as 0..100
func (st TransferStats) ProgressPercent() float64 {
	if st.TotalFiles <= 0 {
		return 0
	}
	return float64(st.CopiedFiles) / float64(st.TotalFiles) * 100.0
}

// ETASeconds estimates remaining seconds from byte throughput, -1 if unknown
func (st TransferStats) ETASeconds() int {
	if st.BytesTotal <= 0 || st.BytesPerSec <= 0 {
		return -1
	}
	remain := st.BytesTotal - st.BytesDone
	if remain < 0 {
		remain = 0
	}
	return int(float64(remain) / st.BytesPerSec)
}

// ETAString returns the ETA formatted as mm:ss or hh:mm:ss, or "—" if unknown
func (st TransferStats) ETAString() string {
	eta := st.ETASeconds()
	if eta < 0 {
		return "—"
	}

	hours := eta / 3600
	minutes := (eta % 3600) / 60
	seconds := eta % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// RateString returns the "N files/s | N MB/s | ETA" line shown above the
// progress bar
func (st TransferStats) RateString() string {
	return fmt.Sprintf("%.2f files/s | %.2f MB/s | ETA %s",
		st.FilesPerSec, st.BytesPerSec/1024/1024, st.ETAString())
}
