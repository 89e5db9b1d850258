// Package diagnostics holds the restore error list.
package diagnostics

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/restore/internal/core/domain"
)

// List implements ports.ErrorList in memory.
type List struct {
	mu      sync.Mutex
	entries []domain.Diagnostic
	seen    map[string]struct{}
}

// New creates an empty List.
func New() *List {
	return &List{seen: make(map[string]struct{})}
}

// Add appends entries that are not already present.
func (l *List) Add(entries ...domain.Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		key := e.Key()
		if _, ok := l.seen[key]; ok {
			continue
		}
		l.seen[key] = struct{}{}
		l.entries = append(l.entries, e)
	}
}

// Clear removes every entry.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	clear(l.seen)
}

// Entries returns errors before warnings before messages, then by project and message.
func (l *List) Entries() []domain.Diagnostic {
	l.mu.Lock()
	out := slices.Clone(l.entries)
	l.mu.Unlock()

	slices.SortStableFunc(out, func(a, b domain.Diagnostic) int {
		return cmp.Or(
			cmp.Compare(b.Severity, a.Severity),
			strings.Compare(strings.ToLower(a.ProjectPath), strings.ToLower(b.ProjectPath)),
			strings.Compare(a.Message, b.Message),
		)
	})
	return out
}
