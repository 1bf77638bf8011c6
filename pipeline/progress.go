package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports per-document progress of a run.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	completed      int
	failed         int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of documents to process
// reportInterval: report progress every N documents
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.completed = 0
	p.failed = 0
	p.lastReported = 0
}

// Complete records one successfully written document.
func (p *ProgressTracker) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.completed++
	p.maybeReport()
}

// Fail records one failed document.
func (p *ProgressTracker) Fail() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.failed++
	p.maybeReport()
}

// Counts returns the number of completed and failed documents so far.
func (p *ProgressTracker) Counts() (completed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed, p.failed
}

// Finish prints final progress.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// maybeReport prints progress at interval boundaries. Lock must be held.
func (p *ProgressTracker) maybeReport() {
	done := p.completed + p.failed
	if done-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = done
	}
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	done := p.completed + p.failed
	elapsed := time.Since(p.startTime)
	rate := float64(done) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(done) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%), %d failed - %.1f docs/s",
		done, p.total, percentage, p.failed, rate)
}
