package model

// WorkerStatus is the telemetry record a transfer worker emits on every
// state transition. MBPS is zero when no fresh throughput sample exists;
// the UI keeps the last non-zero value per worker.
type WorkerStatus struct {
	ID       int            // worker number, 1-based
	Status   TransferStatus // idle/copying/ok/failed/skipped
	Files    int            // attempts processed by this worker
	LastFile string         // base name of the last file handled
	MBPS     float64        // last measured throughput in MB/s, 0 when stale
	Active   bool           // true while the worker goroutine is running
}
