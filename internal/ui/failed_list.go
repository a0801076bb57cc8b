package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/iautotransfer/iautotransfer/internal/transfer"
)

// FailedList renders the files that exhausted their pull attempts. It
// mirrors the controller's failed list, so a requeue empties it.
type FailedList struct {
	list *widget.List

	mu    sync.Mutex
	lines []string
}

// NewFailedList creates an empty failed-files list
func NewFailedList() *FailedList {
	fl := &FailedList{}

	fl.list = widget.NewList(
		func() int {
			fl.mu.Lock()
			defer fl.mu.Unlock()
			return len(fl.lines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			fl.mu.Lock()
			defer fl.mu.Unlock()
			if id < len(fl.lines) {
				obj.(*widget.Label).SetText(fl.lines[id])
			}
		},
	)

	return fl
}

// Widget returns the underlying list
func (fl *FailedList) Widget() *widget.List {
	return fl.list
}

// SetAll replaces the contents with the given failures. Safe to call from
// worker goroutines; must be followed by a Refresh on the Fyne thread.
func (fl *FailedList) SetAll(failed []transfer.FailedFile) {
	lines := make([]string, 0, len(failed))
	for _, f := range failed {
		lines = append(lines, fmt.Sprintf("%s (worker %d): %s", f.File.Name(), f.Worker, f.Err))
	}

	fl.mu.Lock()
	fl.lines = lines
	fl.mu.Unlock()
}

// Reset clears the list before a new run
func (fl *FailedList) Reset() {
	fl.mu.Lock()
	fl.lines = nil
	fl.mu.Unlock()
}

// Len reports how many failures are shown
func (fl *FailedList) Len() int {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return len(fl.lines)
}

// Refresh redraws the list. Call from the Fyne thread.
func (fl *FailedList) Refresh() {
	fl.list.Refresh()
}
