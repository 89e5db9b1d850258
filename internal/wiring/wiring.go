// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/restore/internal/adapters/config"
	_ "go.trai.ch/restore/internal/adapters/daemon"
	_ "go.trai.ch/restore/internal/adapters/diagnostics"
	_ "go.trai.ch/restore/internal/adapters/feed"
	_ "go.trai.ch/restore/internal/adapters/filetimes"
	_ "go.trai.ch/restore/internal/adapters/lock"
	_ "go.trai.ch/restore/internal/adapters/logger"
	_ "go.trai.ch/restore/internal/adapters/metrics"
	_ "go.trai.ch/restore/internal/adapters/projectcache"
	_ "go.trai.ch/restore/internal/adapters/telemetry"
	_ "go.trai.ch/restore/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/restore/internal/app"
	_ "go.trai.ch/restore/internal/engine/events"
	_ "go.trai.ch/restore/internal/engine/job"
	_ "go.trai.ch/restore/internal/engine/nomination"
	_ "go.trai.ch/restore/internal/engine/service"
	_ "go.trai.ch/restore/internal/engine/uptodate"
	_ "go.trai.ch/restore/internal/engine/worker"
)
