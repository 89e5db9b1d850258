package daemon

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pollInterval    = 100 * time.Millisecond
	maxPollDuration = 5 * time.Second
	pingTimeout     = time.Second
)

// Connector implements ports.DaemonConnector.
type Connector struct {
	executablePath string
	clock          clock.Clock
}

// NewConnector creates a connector spawning the running executable.
func NewConnector() (*Connector, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return &Connector{executablePath: exe, clock: clock.WallClock}, nil
}

// Dial implements ports.DaemonConnector. It fails with ErrDaemonUnavailable when
// no daemon answers on the workspace socket.
func (c *Connector) Dial(ctx context.Context, root string) (ports.DaemonClient, error) {
	client, err := c.ping(ctx, root)
	if err != nil {
		return nil, errors.Join(domain.ErrDaemonUnavailable, zerr.With(err, "root", root))
	}
	return client, nil
}

// Connect implements ports.DaemonConnector.
func (c *Connector) Connect(ctx context.Context, root string) (ports.DaemonClient, error) {
	if client, err := c.ping(ctx, root); err == nil {
		return client, nil
	}

	if err := c.Spawn(ctx, root); err != nil {
		return nil, err
	}

	client, err := c.ping(ctx, root)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon started but is not responsive")
	}
	return client, nil
}

// IsRunning implements ports.DaemonConnector.
func (c *Connector) IsRunning(ctx context.Context, root string) bool {
	if root == "" {
		return false
	}
	client, err := c.ping(ctx, root)
	if err != nil {
		return false
	}
	_ = client.Close()
	return true
}

// ping returns a client whose daemon answered a status request.
func (c *Connector) ping(ctx context.Context, root string) (*Client, error) {
	client, err := Dial(root)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := client.Status(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Spawn starts `restore serve` for root in the background and waits until it answers.
func (c *Connector) Spawn(ctx context.Context, root string) error {
	if root == "" {
		return zerr.New("root cannot be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve absolute root path")
	}

	daemonDir := filepath.Join(absRoot, domain.DefaultRestorePath())
	if mkdirErr := os.MkdirAll(daemonDir, domain.DirPerm); mkdirErr != nil {
		return zerr.Wrap(mkdirErr, "failed to create daemon directory")
	}

	logPath := filepath.Join(absRoot, domain.DefaultDaemonLogPath())
	//nolint:gosec // G304: logPath is from root + domain constant, not user input
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open daemon log")
	}

	//nolint:gosec // G204: executablePath is controlled, args are fixed literals
	cmd := exec.Command(c.executablePath, "serve")
	cmd.Dir = absRoot
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return zerr.Wrap(err, domain.ErrDaemonSpawnFailed.Error())
	}

	go func() {
		_ = cmd.Wait()
		_ = logFile.Close()
	}()

	return c.waitForStartup(ctx, absRoot)
}

func (c *Connector) waitForStartup(ctx context.Context, root string) error {
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			client, err := c.ping(ctx, root)
			if err != nil {
				return err
			}
			return client.Close()
		},
		Attempts: int(maxPollDuration / pollInterval),
		Delay:    pollInterval,
		Clock:    c.clock,
		Stop:     ctx.Done(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return zerr.With(zerr.Wrap(err, domain.ErrDaemonSpawnFailed.Error()), "log", domain.DefaultDaemonLogPath())
	}
	return nil
}
