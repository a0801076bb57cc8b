// Package transfer copies media files from the device to local disk with a
// pool of workers, each holding its own AFC session. The pool can be
// paused, resumed, stopped and resized while a run is in flight.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/model"
	"github.com/iautotransfer/iautotransfer/internal/platform"
)

const (
	// MinWorkers and MaxWorkers bound the pool size
	MinWorkers = 1
	MaxWorkers = 8

	// How often a paused or idle worker re-checks its state
	pollInterval = 50 * time.Millisecond

	pullAttempts = 3
)

// Linear backoff between pull attempts, a variable so tests can zero it
var pullRetryDelay = 250 * time.Millisecond

// Converter turns a pulled HEIC into a JPEG. Implementations must be safe
// for concurrent use.
type Converter interface {
	ConvertHEIC(path string, deleteOriginal bool) (string, error)
}

// Recorder persists successful copies so later runs can skip them
type Recorder interface {
	Seen(remotePath string, size int64) (bool, error)
	Record(remotePath, localPath string, size int64) error
}

// Options configures a transfer run
type Options struct {
	DestRoot      string
	Workers       int
	Flatten       bool // drop device directory structure
	SkipExisting  bool // skip files already present at the destination path
	WriteManifest bool

	ConvertHEIC bool
	DeleteHEIC  bool // remove the .heic after a successful conversion
	Converter   Converter

	SkipTransferred bool // skip files the Recorder has seen
	Recorder        Recorder
}

// FailedFile is a file that exhausted its pull attempts
type FailedFile struct {
	File   model.MediaFile
	Worker int
	Err    string
}

// Result summarizes a finished run
type Result struct {
	Copied   int
	Skipped  int
	Failed   []FailedFile
	Bytes    int64
	Duration time.Duration

	// ManifestPath is empty when no manifest was written
	ManifestPath string
}

// Controller runs the worker pool. One Controller is good for one Run.
type Controller struct {
	id     string
	dialer device.Dialer
	opts   Options

	mu      sync.Mutex
	queue   []model.MediaFile
	failed  []FailedFile
	live    map[int]bool // worker ids currently running
	copied  int
	skipped int

	desired   atomic.Int32
	paused    atomic.Bool
	stopped   atomic.Bool
	busy      atomic.Int32 // workers mid-file
	bytesDone atomic.Int64

	totalFiles int
	totalBytes int64
	startedAt  time.Time

	runCtx      context.Context
	wg          sync.WaitGroup
	manifest    *ManifestWriter
	preskipRows []ManifestRow

	onWorker func(model.WorkerStatus)
	onStats  func(model.TransferStats)
	onLog    func(msg string)
}

// New creates a controller over the given dialer
func New(dialer device.Dialer, opts Options) *Controller {
	if opts.Workers < MinWorkers {
		opts.Workers = MinWorkers
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
	c := &Controller{
		id:     runID(),
		dialer: dialer,
		opts:   opts,
		live:   make(map[int]bool),
	}
	c.desired.Store(int32(opts.Workers))
	return c
}

// SetWorkerCallback sets the per-worker telemetry callback. Called from
// worker goroutines.
func (c *Controller) SetWorkerCallback(callback func(model.WorkerStatus)) {
	c.onWorker = callback
}

// SetStatsCallback sets the aggregate progress callback, invoked after
// every file outcome
func (c *Controller) SetStatsCallback(callback func(model.TransferStats)) {
	c.onStats = callback
}

// SetLogCallback sets the human-readable log callback
func (c *Controller) SetLogCallback(callback func(msg string)) {
	c.onLog = callback
}

// Run copies the given files and blocks until the pool drains or the
// context is cancelled. Callbacks must be set before calling Run.
func (c *Controller) Run(ctx context.Context, files []model.MediaFile) (*Result, error) {
	if err := os.MkdirAll(c.opts.DestRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination: %w", err)
	}

	queue, preskipped := c.buildQueue(files)

	c.mu.Lock()
	c.queue = queue
	c.skipped = preskipped
	c.totalFiles = len(files)
	for _, f := range files {
		c.totalBytes += f.Size
	}
	c.startedAt = time.Now()
	c.runCtx = ctx
	c.mu.Unlock()

	if c.opts.WriteManifest {
		manifest, err := CreateManifest(c.opts.DestRoot)
		if err != nil {
			return nil, err
		}
		c.manifest = manifest
		defer c.manifest.Close()
	}

	c.logf("[run %s] transferring %d files with %d workers", c.id, len(queue), c.desired.Load())

	c.mu.Lock()
	for id := 1; id <= int(c.desired.Load()); id++ {
		c.spawnLocked(id)
	}
	c.mu.Unlock()

	c.wg.Wait()

	c.mu.Lock()
	result := &Result{
		Copied:   c.copied,
		Skipped:  c.skipped,
		Failed:   append([]FailedFile(nil), c.failed...),
		Bytes:    c.bytesDone.Load(),
		Duration: time.Since(c.startedAt),
	}
	c.mu.Unlock()
	if c.manifest != nil {
		result.ManifestPath = c.manifest.Path
	}

	c.pushStats()
	c.logf("Done: %d copied, %d skipped, %d failed in %s",
		result.Copied, result.Skipped, len(result.Failed), result.Duration.Round(time.Second))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// buildQueue drops files the Recorder already has, when enabled
func (c *Controller) buildQueue(files []model.MediaFile) (queue []model.MediaFile, skipped int) {
	if !c.opts.SkipTransferred || c.opts.Recorder == nil {
		return append([]model.MediaFile(nil), files...), 0
	}
	for _, f := range files {
		seen, err := c.opts.Recorder.Seen(f.RemotePath, f.Size)
		if err == nil && seen {
			skipped++
			c.appendManifestLater(f, "", "skipped", 0, "already transferred")
			continue
		}
		queue = append(queue, f)
	}
	return queue, skipped
}

// Queue building runs before the manifest is opened, so pre-skip rows are
// buffered and flushed with the first worker outcome
func (c *Controller) appendManifestLater(f model.MediaFile, localPath, status string, worker int, errMsg string) {
	if !c.opts.WriteManifest {
		return
	}
	c.mu.Lock()
	c.preskipRows = append(c.preskipRows, ManifestRow{
		RemotePath: f.RemotePath,
		LocalPath:  localPath,
		Size:       f.Size,
		Status:     status,
		Worker:     worker,
		Err:        errMsg,
		CopiedAt:   time.Now(),
	})
	c.mu.Unlock()
}

// Pause makes workers idle after their current file. AFC sessions stay
// open so Resume is instant.
func (c *Controller) Pause() { c.paused.Store(true) }

// Resume lifts a pause
func (c *Controller) Resume() { c.paused.Store(false) }

// IsPaused reports whether the pool is paused
func (c *Controller) IsPaused() bool { return c.paused.Load() }

// Stop lets each worker finish its current file, then drains the pool.
// Remaining queued files are not marked failed.
func (c *Controller) Stop() { c.stopped.Store(true) }

// ScaleWorkers changes the pool size mid-run. Growing spawns workers
// immediately; shrinking takes effect as workers finish their current
// file. Never interrupts a copy in flight.
func (c *Controller) ScaleWorkers(n int) {
	if n < MinWorkers {
		n = MinWorkers
	}
	if n > MaxWorkers {
		n = MaxWorkers
	}
	c.desired.Store(int32(n))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runCtx == nil {
		return
	}
	for id := 1; id <= n; id++ {
		if !c.live[id] {
			c.spawnLocked(id)
		}
	}
}

// RetryFailed moves failed files back into the queue and returns how many
// were requeued. Works mid-run: idle workers pick them up.
func (c *Controller) RetryFailed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.failed)
	for _, f := range c.failed {
		c.queue = append(c.queue, f.File)
	}
	c.failed = c.failed[:0]
	return n
}

// FailedFiles returns a snapshot of the failed list
func (c *Controller) FailedFiles() []FailedFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]FailedFile(nil), c.failed...)
}

func (c *Controller) spawnLocked(id int) {
	c.live[id] = true
	c.wg.Add(1)
	go c.worker(id)
}

// pop takes the next queued file and marks the caller busy in the same
// critical section, so idle peers never observe an empty queue with the
// file unaccounted for
func (c *Controller) pop() (model.MediaFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return model.MediaFile{}, false
	}
	f := c.queue[0]
	c.queue = c.queue[1:]
	c.busy.Add(1)
	return f, true
}

// worker pulls files until the queue drains and no peer can refill it.
// Each worker holds its own AFC session for the whole run.
func (c *Controller) worker(id int) {
	defer c.wg.Done()
	defer func() {
		c.mu.Lock()
		delete(c.live, id)
		c.mu.Unlock()
		c.pushWorker(model.WorkerStatus{ID: id, Status: model.TransferStatusIdle, Active: false})
	}()

	client, err := c.dialer.Dial()
	if err != nil {
		c.logf("[worker %d] session failed: %v", id, err)
		c.pushWorker(model.WorkerStatus{ID: id, Status: model.TransferStatusFailed, LastFile: err.Error()})
		return
	}
	defer client.Close()

	status := model.WorkerStatus{ID: id, Status: model.TransferStatusIdle, Active: true}
	c.pushWorker(status)

	for {
		if c.stopped.Load() || c.runCtx.Err() != nil {
			return
		}
		if int32(id) > c.desired.Load() {
			return
		}
		if c.paused.Load() {
			time.Sleep(pollInterval)
			continue
		}

		file, ok := c.pop()
		if !ok {
			// Peers mid-file may still fail and get requeued
			if c.busy.Load() == 0 {
				return
			}
			time.Sleep(pollInterval)
			continue
		}

		c.processFile(client, id, file, &status)
		c.busy.Add(-1)
		c.pushStats()
	}
}

func (c *Controller) processFile(client device.Client, id int, file model.MediaFile, status *model.WorkerStatus) {
	name := file.Name()
	status.Status = model.TransferStatusCopying
	status.LastFile = name
	status.MBPS = 0
	c.pushWorker(*status)

	localPath := LocalPath(c.opts.DestRoot, file.RemotePath, c.opts.Flatten)

	// Skip-if-exists checks the path before dedupe so re-runs into the
	// same destination are cheap
	if c.opts.SkipExisting {
		if fi, err := os.Stat(localPath); err == nil && !fi.IsDir() {
			c.mu.Lock()
			c.skipped++
			c.mu.Unlock()
			status.Status = model.TransferStatusSkipped
			c.pushWorker(*status)
			c.writeManifest(file, localPath, "skipped", id, "")
			return
		}
	} else {
		localPath = platform.UniquePath(localPath)
	}

	start := time.Now()
	err := c.pull(client, file.RemotePath, localPath)
	elapsed := time.Since(start)

	if err != nil {
		c.mu.Lock()
		c.failed = append(c.failed, FailedFile{File: file, Worker: id, Err: err.Error()})
		c.mu.Unlock()
		c.logf("[worker %d] FAILED %s: %v", id, name, err)
		status.Status = model.TransferStatusFailed
		c.pushWorker(*status)
		c.writeManifest(file, localPath, "failed", id, err.Error())
		return
	}

	c.bytesDone.Add(file.Size)
	c.mu.Lock()
	c.copied++
	c.mu.Unlock()

	status.Files++
	status.Status = model.TransferStatusOK
	if secs := elapsed.Seconds(); secs > 0 {
		status.MBPS = float64(file.Size) / (1024 * 1024) / secs
	}
	c.pushWorker(*status)

	if c.opts.Recorder != nil {
		if err := c.opts.Recorder.Record(file.RemotePath, localPath, file.Size); err != nil {
			c.logf("[worker %d] history write failed: %v", id, err)
		}
	}
	c.writeManifest(file, localPath, "copied", id, "")

	if c.opts.ConvertHEIC && c.opts.Converter != nil && strings.EqualFold(filepath.Ext(localPath), ".heic") {
		if _, err := c.opts.Converter.ConvertHEIC(localPath, c.opts.DeleteHEIC); err != nil {
			c.logf("[worker %d] HEIC conversion failed for %s: %v", id, name, err)
		}
	}
}

// pull copies one file with linear backoff between attempts. AFC pulls
// fail transiently when the device locks its photo database.
func (c *Controller) pull(client device.Client, remotePath, localPath string) error {
	var err error
	for attempt := 1; attempt <= pullAttempts; attempt++ {
		if err = client.PullFile(remotePath, localPath); err == nil {
			return nil
		}
		// A failed pull truncates the destination first, so the partial
		// file must go or a later skip-if-exists run would keep it
		os.Remove(localPath)
		if attempt < pullAttempts {
			time.Sleep(pullRetryDelay * time.Duration(attempt))
		}
	}
	return err
}

func (c *Controller) writeManifest(file model.MediaFile, localPath, status string, worker int, errMsg string) {
	if c.manifest == nil {
		return
	}
	c.flushPreskips()
	row := ManifestRow{
		RemotePath: file.RemotePath,
		LocalPath:  localPath,
		Size:       file.Size,
		Status:     status,
		Worker:     worker,
		Err:        errMsg,
		CopiedAt:   time.Now(),
	}
	if err := c.manifest.Append(row); err != nil {
		c.logf("manifest write failed: %v", err)
	}
}

func (c *Controller) flushPreskips() {
	c.mu.Lock()
	rows := c.preskipRows
	c.preskipRows = nil
	c.mu.Unlock()
	for _, row := range rows {
		if err := c.manifest.Append(row); err != nil {
			c.logf("manifest write failed: %v", err)
		}
	}
}

func (c *Controller) pushWorker(status model.WorkerStatus) {
	if c.onWorker != nil {
		c.onWorker(status)
	}
}

func (c *Controller) pushStats() {
	if c.onStats == nil {
		return
	}
	c.mu.Lock()
	copied := c.copied
	skipped := c.skipped
	total := c.totalFiles
	totalBytes := c.totalBytes
	started := c.startedAt
	c.mu.Unlock()

	stats := model.TransferStats{
		CopiedFiles: copied + skipped,
		TotalFiles:  total,
		BytesDone:   c.bytesDone.Load(),
		BytesTotal:  totalBytes,
	}
	if secs := time.Since(started).Seconds(); secs > 0 {
		stats.FilesPerSec = float64(copied) / secs
		stats.BytesPerSec = float64(stats.BytesDone) / secs
	}
	c.onStats(stats)
}

// runID tags a run's log lines so interleaved runs stay attributable
func runID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()[:8]
	}
	return id.String()[:8]
}

func (c *Controller) logf(format string, args ...any) {
	if c.onLog != nil {
		c.onLog(fmt.Sprintf(format, args...))
	}
}
