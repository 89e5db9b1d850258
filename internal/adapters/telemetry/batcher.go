package telemetry

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.trai.ch/restore/internal/core/domain"
)

const (
	// DefaultBatchSize is the number of diagnostics that triggers a flush.
	DefaultBatchSize = 32
	// DefaultFlushInterval is the longest a reported diagnostic waits before it is flushed.
	DefaultFlushInterval = 50 * time.Millisecond
)

var errBatcherClosed = errors.New("diagnostics of the restore operation are already flushed")

// DiagnosticBatch is one flush of the diagnostics reported during a restore operation.
type DiagnosticBatch struct {
	OperationID string
	Diagnostics []domain.Diagnostic
}

// Counts returns the number of errors and warnings in the batch.
func (b DiagnosticBatch) Counts() (errs, warnings int) {
	for _, d := range b.Diagnostics {
		switch d.Severity {
		case domain.SeverityError:
			errs++
		case domain.SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

// Codes returns the distinct diagnostic codes of the batch in sorted order.
func (b DiagnosticBatch) Codes() []string {
	codes := make([]string, 0, len(b.Diagnostics))
	for _, d := range b.Diagnostics {
		if d.Code != "" {
			codes = append(codes, d.Code)
		}
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}

// DiagnosticBatcher collects the diagnostics of one restore operation and hands them
// on in batches, when the batch is full or the flush interval elapses. A diagnostic
// reported twice within a batch is kept once. It is safe for concurrent use.
type DiagnosticBatcher struct {
	operationID string
	size        int
	interval    time.Duration
	onFlush     func(DiagnosticBatch)

	mu      sync.Mutex
	pending []domain.Diagnostic
	seen    map[string]struct{}
	ticker  *time.Ticker
	stopCh  chan struct{}
	closed  bool
}

// NewDiagnosticBatcher starts a batcher for the given operation. Non-positive limits
// fall back to DefaultBatchSize and DefaultFlushInterval. Close stops the background
// flusher.
func NewDiagnosticBatcher(
	operationID string,
	size int,
	interval time.Duration,
	onFlush func(DiagnosticBatch),
) *DiagnosticBatcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	b := &DiagnosticBatcher{
		operationID: operationID,
		size:        size,
		interval:    interval,
		onFlush:     onFlush,
		seen:        make(map[string]struct{}),
		ticker:      time.NewTicker(interval),
		stopCh:      make(chan struct{}),
	}
	go b.run()
	return b
}

// Add queues d for the next batch.
func (b *DiagnosticBatcher) Add(d domain.Diagnostic) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errBatcherClosed
	}

	key := d.Key()
	if _, dup := b.seen[key]; dup {
		return nil
	}
	b.seen[key] = struct{}{}
	b.pending = append(b.pending, d)

	if len(b.pending) >= b.size {
		b.flushLocked()
		b.ticker.Reset(b.interval)
	}
	return nil
}

// Flush hands pending diagnostics on immediately.
func (b *DiagnosticBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.flushLocked()
	}
}

// Close flushes what is pending and stops the batcher. Later calls to Add fail.
func (b *DiagnosticBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stopCh)
	b.flushLocked()
	return nil
}

func (b *DiagnosticBatcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stopCh:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. Batches are delivered under mu so they
// arrive in report order.
func (b *DiagnosticBatcher) flushLocked() {
	if len(b.pending) == 0 {
		return
	}
	batch := DiagnosticBatch{OperationID: b.operationID, Diagnostics: b.pending}
	b.pending = nil
	clear(b.seen)

	if b.onFlush != nil {
		b.onFlush(batch)
	}
}
