package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.trai.ch/restore/internal/adapters/daemon"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

// Serve runs the restore daemon of the workspace until ctx is cancelled, a client
// asks it to stop or it stays idle for the configured timeout. It restores once at
// startup and again whenever a restore input changes.
func (a *App) Serve(ctx context.Context) error {
	rt, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx, rt)

	lifecycle := daemon.NewLifecycle(rt.Workspace.DaemonIdleTimeout)
	reloader := daemon.NewReloader(a.loader, rt.Times, rt.Service, lifecycle, a.logger)
	if err := reloader.Load(rt.Workspace.NominationFiles); err != nil {
		a.logger.Error(err)
	}
	a.markLoaded(rt)

	server := daemon.NewServer(rt.Workspace.Root, lifecycle, rt.Service, rt.Solution, a.logger)

	g, ctx := errgroup.WithContext(ctx)
	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	g.Go(func() error {
		// The server owns the daemon lifetime; everything else stops with it.
		defer stop()
		return server.Serve(serveCtx)
	})
	g.Go(func() error {
		return rt.Trigger.Run(serveCtx, rt.Workspace.Root, func(paths []string) {
			reloader.OnChange(serveCtx, paths)
		})
	})
	if rt.Workspace.MetricsAddress != "" {
		g.Go(func() error {
			return a.serveMetrics(serveCtx, rt)
		})
	}
	g.Go(func() error {
		rt.Service.ScheduleRestore(serveCtx)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) serveMetrics(ctx context.Context, rt *Runtime) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rt.Metrics.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", rt.Workspace.MetricsAddress)
	if err != nil {
		return err
	}
	a.logger.Info("serving metrics on " + ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
