// Package app implements the application layer for restore.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/restore/internal/adapters/detector"
	"go.trai.ch/restore/internal/adapters/metrics"
	"go.trai.ch/restore/internal/adapters/projectcache"
	"go.trai.ch/restore/internal/adapters/watcher"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/events"
	"go.trai.ch/restore/internal/engine/service"
	"go.trai.ch/restore/internal/engine/worker"
	"go.trai.ch/zerr"
)

// Runtime holds the restore machinery of a loaded workspace.
type Runtime struct {
	Workspace   *domain.Workspace
	Service     *service.Service
	Solution    *projectcache.Cache
	Worker      *worker.Worker
	Diagnostics ports.ErrorList
	Events      *events.Bus
	Metrics     *metrics.Metrics
	Trigger     *watcher.Trigger
	Times       ports.FileTimes
	Tracer      ports.Tracer
}

// RuntimeProvider builds the Runtime of the workspace containing the working directory.
// It is called lazily so commands that need no workspace work anywhere.
type RuntimeProvider func(ctx context.Context) (*Runtime, error)

// configurableLogger is implemented by the logger adapter.
type configurableLogger interface {
	SetJSON(enable bool)
	SetVerbosity(v domain.Verbosity)
}

// LogOptions selects the output format and log level.
type LogOptions struct {
	// JSON prints command results as JSON. Logs follow unless Format says otherwise.
	JSON bool
	// Format is the log format: auto, text or json.
	Format    string
	Verbosity string
}

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	connector ports.DaemonConnector
	logger    ports.Logger
	runtime   RuntimeProvider
	out       io.Writer
	json      bool
	verbosity string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	connector ports.DaemonConnector,
	log ports.Logger,
	runtime RuntimeProvider,
) *App {
	return &App{
		loader:    loader,
		connector: connector,
		logger:    log,
		runtime:   runtime,
		out:       os.Stdout,
	}
}

// WithOutput sets the writer command results are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// Configure applies log options. Auto format logs JSON when stderr is not a
// terminal or a CI runner is detected. An empty verbosity keeps the workspace setting.
func (a *App) Configure(opts LogOptions) {
	a.json = opts.JSON
	a.verbosity = opts.Verbosity

	l, ok := a.logger.(configurableLogger)
	if !ok {
		return
	}
	detected := detector.DetectFormat(os.Stderr)
	if opts.JSON {
		detected = detector.FormatJSON
	}
	l.SetJSON(detector.ResolveFormat(detected, opts.Format) == detector.FormatJSON)
	if opts.Verbosity != "" {
		l.SetVerbosity(domain.ParseVerbosity(opts.Verbosity))
	}
}

// open builds the runtime and applies the workspace verbosity unless a verbosity
// was given on the command line.
func (a *App) open(ctx context.Context) (*Runtime, error) {
	rt, err := a.runtime(ctx)
	if err != nil {
		return nil, err
	}
	if l, ok := a.logger.(configurableLogger); ok && a.verbosity == "" {
		l.SetVerbosity(rt.Workspace.Settings.Verbosity)
	}
	return rt, nil
}

// close stops the worker and flushes traces.
func (a *App) close(ctx context.Context, rt *Runtime) {
	if err := rt.Worker.Close(); err != nil {
		a.logger.Error(err)
	}
	if s, ok := rt.Tracer.(interface{ Shutdown(context.Context) error }); ok {
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("flushing traces: " + err.Error())
		}
	}
}

// load stores every nomination of the workspace and marks the solution loaded.
// Nominations that fail to load are logged and skipped.
func (a *App) load(rt *Runtime) {
	nominations, err := a.loader.LoadNominations(rt.Workspace)
	if err != nil {
		a.logger.Error(err)
	}
	for _, n := range nominations {
		if err := rt.Service.LoadProject(n); err != nil {
			a.logger.Error(err)
		}
	}
	a.markLoaded(rt)
}

func (a *App) markLoaded(rt *Runtime) {
	rt.Solution.SetLoaded(true)
	rt.Worker.OnSolutionLoaded()
	a.logger.Debug("solution loaded")
}

// workspaceRoot finds the workspace of the working directory without building a runtime.
func (a *App) workspaceRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	ws, err := a.loader.Load(cwd)
	if err != nil {
		return "", err
	}
	return ws.Root, nil
}
