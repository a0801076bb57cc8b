package model

// TransferStatus represents the per-file state a worker reports while
// processing the transfer queue
type TransferStatus string

const (
	// TransferStatusIdle means the worker is waiting for work
	TransferStatusIdle TransferStatus = "idle"

	// TransferStatusCopying means a file is being pulled from the device
	TransferStatusCopying TransferStatus = "copying"

	// TransferStatusOK means the last file was copied successfully
	TransferStatusOK TransferStatus = "ok"

	// TransferStatusFailed means the last file could not be copied
	TransferStatusFailed TransferStatus = "failed"

	// TransferStatusSkipped means the last file already existed locally
	TransferStatusSkipped TransferStatus = "skipped"
)

// String returns the string representation of TransferStatus
func (ts TransferStatus) String() string {
	return string(ts)
}

// IsBusy returns true while the worker holds a file
func (ts TransferStatus) IsBusy() bool {
	return ts == TransferStatusCopying
}

// IsOutcome returns true for statuses that conclude a single file
func (ts TransferStatus) IsOutcome() bool {
	return ts == TransferStatusOK || ts == TransferStatusFailed || ts == TransferStatusSkipped
}
