package ui

import (
	"fmt"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/iautotransfer/iautotransfer/internal/model"
)

var workerTableHeaders = []string{"#", "Status", "Files", "MB/s", "Last file"}

// WorkerTable renders per-worker telemetry. Throughput is sticky: a worker
// that reports zero MB/s keeps showing its last measured speed, since a
// zero only means no fresh sample.
type WorkerTable struct {
	table *widget.Table

	mu     sync.Mutex
	rows   []model.WorkerStatus
	sticky map[int]float64 // worker ID -> last non-zero MB/s
}

// NewWorkerTable creates an empty worker telemetry table
func NewWorkerTable() *WorkerTable {
	wt := &WorkerTable{
		sticky: make(map[int]float64),
	}

	wt.table = widget.NewTable(
		func() (int, int) {
			wt.mu.Lock()
			defer wt.mu.Unlock()
			return len(wt.rows) + 1, len(workerTableHeaders)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			wt.mu.Lock()
			defer wt.mu.Unlock()

			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(workerTableHeaders[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			if id.Row-1 >= len(wt.rows) {
				label.SetText("")
				return
			}
			label.SetText(wt.cellText(wt.rows[id.Row-1], id.Col))
		},
	)

	wt.table.SetColumnWidth(0, WorkerColIDWidth)
	wt.table.SetColumnWidth(1, WorkerColStatusWidth)
	wt.table.SetColumnWidth(2, WorkerColFilesWidth)
	wt.table.SetColumnWidth(3, WorkerColSpeedWidth)
	wt.table.SetColumnWidth(4, WorkerColFileWidth)

	return wt
}

// Widget returns the underlying table
func (wt *WorkerTable) Widget() *widget.Table {
	return wt.table
}

// Update upserts one worker's row. Must be followed by a Refresh on the
// Fyne thread.
func (wt *WorkerTable) Update(ws model.WorkerStatus) {
	wt.mu.Lock()
	defer wt.mu.Unlock()

	if ws.MBPS > 0 {
		wt.sticky[ws.ID] = ws.MBPS
	}

	for i := range wt.rows {
		if wt.rows[i].ID == ws.ID {
			wt.rows[i] = ws
			return
		}
	}
	wt.rows = append(wt.rows, ws)
	sort.Slice(wt.rows, func(i, j int) bool { return wt.rows[i].ID < wt.rows[j].ID })
}

// Reset clears all rows and sticky speeds before a new run
func (wt *WorkerTable) Reset() {
	wt.mu.Lock()
	defer wt.mu.Unlock()
	wt.rows = nil
	wt.sticky = make(map[int]float64)
}

// Refresh redraws the table. Call from the Fyne thread.
func (wt *WorkerTable) Refresh() {
	wt.table.Refresh()
}

func (wt *WorkerTable) cellText(ws model.WorkerStatus, col int) string {
	switch col {
	case 0:
		return fmt.Sprintf("%d", ws.ID)
	case 1:
		if !ws.Active && ws.Status == model.TransferStatusIdle {
			return "done"
		}
		return ws.Status.String()
	case 2:
		return fmt.Sprintf("%d", ws.Files)
	case 3:
		speed := ws.MBPS
		if speed == 0 {
			speed = wt.sticky[ws.ID]
		}
		if speed == 0 {
			return DashPlaceholder
		}
		return fmt.Sprintf("%.1f", speed)
	case 4:
		if ws.LastFile == "" {
			return DashPlaceholder
		}
		return ws.LastFile
	}
	return ""
}
