package ui

import (
	"fmt"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/model"
	"github.com/iautotransfer/iautotransfer/internal/transfer"
)

func TestFailedListMirrorsFailures(t *testing.T) {
	test.NewApp()
	fl := NewFailedList()

	if fl.Len() != 0 {
		t.Errorf("Expected empty list, got %d entries", fl.Len())
	}

	fl.SetAll([]transfer.FailedFile{
		{File: model.MediaFile{RemotePath: "/DCIM/100APPLE/IMG_0001.HEIC"}, Worker: 2, Err: "device disconnected"},
		{File: model.MediaFile{RemotePath: "/DCIM/100APPLE/IMG_0002.MOV"}, Worker: 1, Err: "session closed"},
	})
	if fl.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", fl.Len())
	}
	if got := fl.lines[0]; !strings.Contains(got, "IMG_0001.HEIC") || !strings.Contains(got, "worker 2") {
		t.Errorf("Expected file and worker in line, got %q", got)
	}

	// A requeue empties the controller's failed list and the pane follows
	fl.SetAll(nil)
	if fl.Len() != 0 {
		t.Errorf("Expected empty list after requeue, got %d entries", fl.Len())
	}

	fl.SetAll([]transfer.FailedFile{
		{File: model.MediaFile{RemotePath: "/DCIM/101APPLE/IMG_0100.JPG"}, Worker: 3, Err: "timeout"},
	})
	fl.Reset()
	if fl.Len() != 0 {
		t.Errorf("Expected empty list after Reset, got %d entries", fl.Len())
	}
}

func TestScanErrorMessageUnwraps(t *testing.T) {
	loc := NewLocalization()

	// Dial errors arrive wrapped with device context
	wrapped := fmt.Errorf("device %s: %w", "abc123", device.ErrNoDevice)
	if got := scanErrorMessage(loc, wrapped); got != loc.GetText(KeyNoDevice) {
		t.Errorf("Expected localized no-device text, got %q", got)
	}

	if got := scanErrorMessage(loc, device.ErrNotPaired); got != loc.GetText(KeyNotPaired) {
		t.Errorf("Expected localized not-paired text, got %q", got)
	}

	other := fmt.Errorf("afc session broke")
	if got := scanErrorMessage(loc, other); got != other.Error() {
		t.Errorf("Expected raw error text, got %q", got)
	}
}
