package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 250 * time.Millisecond

// IsRestoreInput reports whether a change to path can change what a restore does.
func IsRestoreInput(path string) bool {
	base := filepath.Base(path)
	return base == domain.ConfigFileName ||
		strings.EqualFold(base, domain.PackagesConfigFileName) ||
		strings.HasSuffix(base, domain.NominationFileSuffix)
}

// Trigger batches changes to restore inputs under a workspace root.
type Trigger struct {
	watcher ports.Watcher
	window  time.Duration
	logger  ports.Logger
}

// NewTrigger creates a trigger reading events from w.
func NewTrigger(w ports.Watcher, window time.Duration, logger ports.Logger) *Trigger {
	return &Trigger{watcher: w, window: window, logger: logger}
}

// Run watches root until the watcher's event stream ends, which happens when ctx is
// cancelled. Each debounced batch of changed restore inputs is passed to onChange;
// a pending batch is flushed before Run returns.
func (t *Trigger) Run(ctx context.Context, root string, onChange func(paths []string)) error {
	if err := t.watcher.Start(ctx, root); err != nil {
		return err
	}
	defer func() {
		if err := t.watcher.Stop(); err != nil {
			t.logger.Warn("stopping file watcher: " + err.Error())
		}
	}()

	d := NewDebouncer(t.window, onChange)
	defer d.Flush()

	for event := range t.watcher.Events() {
		if !IsRestoreInput(event.Path) {
			continue
		}
		t.logger.Debug("restore input changed: " + event.Path)
		d.Add(event.Path)
	}
	return nil
}
