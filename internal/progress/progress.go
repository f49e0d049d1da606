// Package progress reports scheduler progress to logs, metrics, and any
// attached observers. Progress is advisory only and never gates pipeline
// correctness.
package progress

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Callback receives progress updates during a scheduler run.
type Callback interface {
	// OnStart is called once with the total number of regions queued.
	OnStart(total int)

	// OnProgress is called with a monotonically increasing completion count.
	OnProgress(current, total int)

	// OnComplete is called when the queue has fully drained.
	OnComplete()
}

// NoOp implements Callback but does nothing.
type NoOp struct{}

func (NoOp) OnStart(total int)             {}
func (NoOp) OnProgress(current, total int) {}
func (NoOp) OnComplete()                   {}

// LogCallback logs progress updates through slog every interval items.
type LogCallback struct {
	logger   *slog.Logger
	interval int
	lastLog  int
	start    time.Time
	mu       sync.Mutex
}

// NewLogCallback creates a log-based progress reporter. Interval is the
// number of completed items between log lines.
func NewLogCallback(logger *slog.Logger, interval int) *LogCallback {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 10
	}
	return &LogCallback{logger: logger, interval: interval}
}

func (l *LogCallback) OnStart(total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.start = time.Now()
	l.lastLog = 0
	l.logger.Info("recognition started", "total", total)
}

func (l *LogCallback) OnProgress(current, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if current-l.lastLog < l.interval && current != total {
		return
	}
	l.lastLog = current
	elapsed := time.Since(l.start)
	rate := float64(current) / elapsed.Seconds()
	l.logger.Info("recognition progress",
		"current", current,
		"total", total,
		"percent", fmt.Sprintf("%.1f", float64(current)/float64(total)*100),
		"rate", fmt.Sprintf("%.1f/s", rate),
	)
}

func (l *LogCallback) OnComplete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Info("recognition completed", "elapsed", time.Since(l.start).Round(time.Millisecond))
}

// Multi fans progress updates out to several callbacks.
type Multi struct {
	callbacks []Callback
}

// NewMulti creates a callback reporting to every given callback.
func NewMulti(callbacks ...Callback) *Multi {
	return &Multi{callbacks: callbacks}
}

func (m *Multi) OnStart(total int) {
	for _, cb := range m.callbacks {
		cb.OnStart(total)
	}
}

func (m *Multi) OnProgress(current, total int) {
	for _, cb := range m.callbacks {
		cb.OnProgress(current, total)
	}
}

func (m *Multi) OnComplete() {
	for _, cb := range m.callbacks {
		cb.OnComplete()
	}
}

// Snapshot is a point-in-time view of a run, served to status clients.
type Snapshot struct {
	Total     int           `json:"total"`
	Current   int           `json:"current"`
	Done      bool          `json:"done"`
	StartTime time.Time     `json:"start_time"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Tracker retains the latest progress snapshot for polling observers
// (the status server's websocket feed reads from it).
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) OnStart(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = Snapshot{Total: total, StartTime: time.Now()}
}

func (t *Tracker) OnProgress(current, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Current = current
	t.snap.Total = total
	t.snap.Elapsed = time.Since(t.snap.StartTime)
}

func (t *Tracker) OnComplete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Done = true
	t.snap.Elapsed = time.Since(t.snap.StartTime)
}

// Get returns the current snapshot.
func (t *Tracker) Get() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}
