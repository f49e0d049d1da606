package ocr

import (
	"context"
	"sync"
	"time"

	"github.com/pagemill/pagemill/internal/progress"
	"github.com/pagemill/pagemill/internal/region"
	"github.com/pagemill/pagemill/internal/table"
)

const (
	// DefaultWorkers is the default recognition worker-pool size.
	DefaultWorkers = 50
	// DefaultAttempts is the default per-region retry ceiling.
	DefaultAttempts = 25
)

// SchedulerConfig holds the scheduler's concurrency and retry knobs.
type SchedulerConfig struct {
	Workers  int               // pool size (<=0 means DefaultWorkers)
	Attempts int               // retry ceiling per region (<=0 means DefaultAttempts)
	Progress progress.Callback // optional, advisory only
}

// Scheduler drains a FIFO of eligible regions through a fixed worker pool,
// retrying each region up to the configured ceiling and routing results to
// the table accumulator or the per-region result map. Workers emit outcomes
// over a channel; a single consumer owns the result map, so no result state
// is shared between workers.
type Scheduler struct {
	rec Recognizer
	cfg SchedulerConfig
}

// NewScheduler creates a scheduler around the given recognition capability.
func NewScheduler(rec Recognizer, cfg SchedulerConfig) *Scheduler {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.Progress == nil {
		cfg.Progress = progress.NoOp{}
	}
	return &Scheduler{rec: rec, cfg: cfg}
}

// outcome carries one worker result (or the error that aborts the run) to
// the consuming goroutine.
type outcome struct {
	result Result
	err    error
}

// Run processes every OCR-eligible region and returns the non-table result
// map. Table cell results are recorded into acc. When Run returns without
// error, every eligible region has reached a terminal outcome and acc and
// the returned map are safe to read. Any unexpected worker error (such as
// an unreadable image file) aborts the run.
func (s *Scheduler) Run(ctx context.Context, regions []region.Region, acc *table.Accumulator) (map[Key]Result, error) {
	eligible := make([]region.Region, 0, len(regions))
	for _, r := range regions {
		if r.Label.OCREligible() {
			eligible = append(eligible, r)
		}
	}

	results := make(map[Key]Result, len(eligible))
	s.cfg.Progress.OnStart(len(eligible))
	progress.SetQueued(len(eligible))
	if len(eligible) == 0 {
		s.cfg.Progress.OnComplete()
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan region.Region, len(eligible))
	for _, r := range eligible {
		jobs <- r
	}
	close(jobs)

	outcomes := make(chan outcome, s.cfg.Workers)

	var wg sync.WaitGroup
	for range s.cfg.Workers {
		wg.Add(1)
		go s.worker(ctx, jobs, outcomes, &wg)
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var runErr error
	completed := 0
	for o := range outcomes {
		if o.err != nil {
			if runErr == nil {
				runErr = o.err
			}
			cancel()
			continue
		}

		r := o.result.Region
		if r.IsTableCell() {
			acc.Record(r.TableID, r.Row, r.Col, o.result.Text)
		} else {
			results[Key{PageNum: r.PageNum, OrderNum: r.OrderNum, Label: r.Label}] = o.result
		}

		completed++
		progress.CountRegion(o.result.Failed)
		progress.SetQueued(len(eligible) - completed)
		s.cfg.Progress.OnProgress(completed, len(eligible))
	}

	if runErr == nil {
		// Workers that observed cancellation exit without sending an
		// outcome, so a canceled run can drain cleanly. Surface it here.
		runErr = ctx.Err()
	}
	if runErr != nil {
		return nil, runErr
	}
	s.cfg.Progress.OnComplete()
	return results, nil
}

// worker pulls regions until the queue is empty or the run is canceled.
func (s *Scheduler) worker(ctx context.Context, jobs <-chan region.Region, outcomes chan<- outcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case r, ok := <-jobs:
			if !ok {
				return
			}
			res, err := s.process(ctx, r)
			select {
			case outcomes <- outcome{result: res, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// process runs one region to a terminal outcome: recognized text, or the
// failure sentinel once the retry ceiling is exhausted. Each attempt is
// independent; attempt failures are swallowed. Only image I/O errors and
// cancellation propagate.
func (s *Scheduler) process(ctx context.Context, r region.Region) (Result, error) {
	img, err := loadRegionImage(r.ImagePath)
	if err != nil {
		return Result{}, err
	}

	var text string
	attempts := 0
	failed := true
	for attempt := 1; attempt <= s.cfg.Attempts; attempt++ {
		attempts = attempt
		start := time.Now()
		text, err = s.rec.Recognize(ctx, img)
		progress.CountAttempt(time.Since(start).Seconds())
		if err == nil {
			failed = false
			break
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}

	if failed {
		text = FailedText
	}
	return Result{Region: r, Text: text, Attempts: attempts, Failed: failed}, nil
}
