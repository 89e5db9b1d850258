package ports

import "context"

// LockService serializes restore executions across entry points of the process.
//
//go:generate mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks
type LockService interface {
	// ExecuteExclusive runs fn while holding the restore lock. The lock is released on
	// every exit path of fn.
	ExecuteExclusive(ctx context.Context, fn func(ctx context.Context) error) error
	// IsHeld reports whether an operation currently holds the lock.
	IsHeld() bool
}
