package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/ui/style"
	"go.trai.ch/zerr"
)

// Nominate sends nomination files to the workspace daemon, starting it when it is
// not running. Each call waits for the restore the nomination schedules.
func (a *App) Nominate(ctx context.Context, paths []string) error {
	root, err := a.workspaceRoot()
	if err != nil {
		return err
	}

	client, err := a.connector.Connect(ctx, root)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var errs []error
	for _, path := range paths {
		n, err := a.loader.LoadNomination(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ok, err := client.Nominate(ctx, n)
		if err != nil {
			errs = append(errs, zerr.With(err, "project", n.ProjectUniqueName))
			continue
		}
		if !ok {
			errs = append(errs, zerr.With(domain.ErrRestoreExecutionFailed, "project", n.ProjectUniqueName))
			continue
		}
		_, _ = fmt.Fprintf(a.out, "%s %s\n", style.Success.Render(style.Check), n.ProjectUniqueName)
	}
	return errors.Join(errs...)
}

// Status prints the state of the workspace daemon.
func (a *App) Status(ctx context.Context) error {
	root, err := a.workspaceRoot()
	if err != nil {
		return err
	}

	st := &ports.DaemonStatus{}
	client, err := a.connector.Dial(ctx, root)
	if err == nil {
		defer func() { _ = client.Close() }()
		st, err = client.Status(ctx)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrDaemonUnavailable) {
			return err
		}
		st = &ports.DaemonStatus{}
	}

	if a.json {
		return writeJSON(a.out, statusReport(st))
	}

	if !st.Running {
		_, _ = fmt.Fprintf(a.out, "%s daemon is not running\n", style.Faint.Render(style.Dot))
		return nil
	}
	state := "idle"
	if st.Busy {
		state = "restoring"
	}
	_, _ = fmt.Fprintf(a.out, "%s daemon is running (pid %d, %s)\n", style.Success.Render(style.Check), st.PID, state)
	_, _ = fmt.Fprintf(a.out, "  uptime:     %s\n", st.Uptime.Round(time.Second))
	_, _ = fmt.Fprintf(a.out, "  idle stop:  %s\n", st.IdleRemaining.Round(time.Second))
	_, _ = fmt.Fprintf(a.out, "  projects:   %d\n", st.Projects)
	return nil
}

type statusJSON struct {
	Running              bool    `json:"running"`
	PID                  int     `json:"pid,omitempty"`
	UptimeSeconds        float64 `json:"uptimeSeconds,omitempty"`
	IdleRemainingSeconds float64 `json:"idleRemainingSeconds,omitempty"`
	Busy                 bool    `json:"busy"`
	Projects             int     `json:"projects"`
}

func statusReport(st *ports.DaemonStatus) statusJSON {
	return statusJSON{
		Running:              st.Running,
		PID:                  st.PID,
		UptimeSeconds:        st.Uptime.Seconds(),
		IdleRemainingSeconds: st.IdleRemaining.Seconds(),
		Busy:                 st.Busy,
		Projects:             st.Projects,
	}
}

// Stop asks the workspace daemon to shut down. Stopping a daemon that is not
// running is not an error.
func (a *App) Stop(ctx context.Context) error {
	root, err := a.workspaceRoot()
	if err != nil {
		return err
	}

	client, err := a.connector.Dial(ctx, root)
	if err == nil {
		defer func() { _ = client.Close() }()
		err = client.Shutdown(ctx)
	}
	if errors.Is(err, domain.ErrDaemonUnavailable) {
		_, _ = fmt.Fprintf(a.out, "%s daemon is not running\n", style.Faint.Render(style.Dot))
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s daemon stopped\n", style.Success.Render(style.Check))
	return nil
}
