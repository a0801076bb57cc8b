// Package device wraps the vendor iOS protocol stack behind a small client
// interface. All lockdown and AFC specifics live in the go-ios adapter; the
// rest of the app only sees Dialer and Client.
package device

import (
	"errors"

	"github.com/iautotransfer/iautotransfer/internal/model"
)

// Sentinel errors surfaced to the UI
var (
	// ErrNoDevice means usbmux reported no connected iOS device
	ErrNoDevice = errors.New("no iOS device connected (unlock and Trust this computer)")

	// ErrNotPaired means the device refused the lockdown session
	ErrNotPaired = errors.New("device is not paired with this computer")
)

// FileInfo describes a remote file as reported by AFC stat
type FileInfo struct {
	Size  int64
	IsDir bool
}

// Client is a single AFC session plus best-effort lockdown info. Sessions
// are not safe for concurrent use; each transfer worker dials its own.
type Client interface {
	// Info returns lockdown device fields and storage usage
	Info() (model.DeviceInfo, error)

	// ListDir returns entry names under a remote directory, without "." and ".."
	ListDir(path string) ([]string, error)

	// Stat returns file info for a remote path
	Stat(path string) (FileInfo, error)

	// PullFile copies one remote file to localPath, creating parent
	// directories as needed
	PullFile(remotePath, localPath string) error

	// Close releases the AFC session
	Close() error
}

// Dialer opens independent device sessions
type Dialer interface {
	Dial() (Client, error)
}
