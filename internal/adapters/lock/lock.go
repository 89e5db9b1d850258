// Package lock serializes restore executions within the process and, optionally,
// across processes sharing a global packages folder.
package lock

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/juju/clock"
	"github.com/juju/mutex/v2"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

// machineLockDelay is how often a contended machine lock is retried.
const machineLockDelay = 250 * time.Millisecond

// Service implements ports.LockService.
type Service struct {
	sem   chan struct{}
	held  atomic.Bool
	clock clock.Clock

	// machineName is empty when the machine lock is disabled.
	machineName string
	acquire     func(mutex.Spec) (mutex.Releaser, error)
}

// New creates a process-wide restore lock. When machineLock is set the lock is also
// held machine-wide for the given global packages folder.
func New(clk clock.Clock, machineLock bool, packagesFolder string) *Service {
	s := &Service{
		sem:     make(chan struct{}, 1),
		clock:   clk,
		acquire: mutex.Acquire,
	}
	if machineLock {
		s.machineName = MachineLockName(packagesFolder)
	}
	return s
}

// MachineLockName returns the machine lock name guarding a global packages folder.
func MachineLockName(packagesFolder string) string {
	return "restore-" + strconv.FormatUint(xxhash.Sum64String(packagesFolder), 16)
}

// ExecuteExclusive runs fn while holding the lock. It returns ctx.Err() when ctx is
// done before the lock is acquired.
func (s *Service) ExecuteExclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.sem }()

	s.held.Store(true)
	defer s.held.Store(false)

	if s.machineName != "" {
		releaser, err := s.acquire(mutex.Spec{
			Name:   s.machineName,
			Clock:  s.clock,
			Delay:  machineLockDelay,
			Cancel: ctx.Done(),
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return zerr.With(zerr.Wrap(err, domain.ErrLockAcquireFailed.Error()), "name", s.machineName)
		}
		defer releaser.Release()
	}

	return fn(ctx)
}

// IsHeld reports whether an operation currently holds the lock.
func (s *Service) IsHeld() bool {
	return s.held.Load()
}
