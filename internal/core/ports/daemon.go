package ports

import (
	"context"
	"time"

	"go.trai.ch/restore/internal/core/domain"
)

//go:generate mockgen -source=daemon.go -destination=mocks/mock_daemon.go -package=mocks

// DaemonStatus represents the current state of the daemon.
type DaemonStatus struct {
	Running       bool
	PID           int
	Uptime        time.Duration
	IdleRemaining time.Duration
	Busy          bool
	Projects      int
}

// DaemonClient defines the interface for communicating with the daemon.
type DaemonClient interface {
	// Nominate sends a project nomination and waits for the scheduled restore.
	Nominate(ctx context.Context, nomination domain.NominationData) (bool, error)

	// Restore requests an explicit restore and waits for it.
	Restore(ctx context.Context, force bool) (bool, error)

	// Status returns the current daemon status.
	Status(ctx context.Context) (*DaemonStatus, error)

	// Shutdown requests a graceful daemon shutdown.
	Shutdown(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// DaemonConnector manages the daemon of a workspace from the CLI perspective.
type DaemonConnector interface {
	// Connect returns a client to the daemon serving root, spawning it if necessary.
	Connect(ctx context.Context, root string) (DaemonClient, error)

	// Dial returns a client to a running daemon without spawning one.
	Dial(ctx context.Context, root string) (DaemonClient, error)

	// IsRunning reports whether a daemon serving root is responsive.
	IsRunning(ctx context.Context, root string) bool
}
