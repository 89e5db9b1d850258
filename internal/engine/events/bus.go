// Package events delivers solution restore notifications to subscribers.
package events

import (
	"fmt"
	"sync"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

type subscription[E any] struct {
	id int
	fn func(E)
}

// topic is an ordered list of subscribers for one event type.
type topic[E any] struct {
	mu   sync.RWMutex
	next int
	subs []subscription[E]
}

func (t *topic[E]) subscribe(fn func(E)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	id := t.next
	t.subs = append(t.subs, subscription[E]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (t *topic[E]) snapshot() []subscription[E] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]subscription[E], len(t.subs))
	copy(out, t.subs)
	return out
}

// Bus implements ports.RestoreEventsPublisher. Subscribers run synchronously in
// subscription order; a panicking subscriber is logged and skipped.
type Bus struct {
	logger    ports.Logger
	started   topic[domain.SolutionRestoreStartedEvent]
	completed topic[domain.SolutionRestoredEvent]
}

// NewBus creates an event bus without subscribers.
func NewBus(logger ports.Logger) *Bus {
	return &Bus{logger: logger}
}

// SubscribeStarted registers fn for restore started events. The returned function
// removes the subscription.
func (b *Bus) SubscribeStarted(fn func(domain.SolutionRestoreStartedEvent)) func() {
	return b.started.subscribe(fn)
}

// SubscribeCompleted registers fn for restore completed events. The returned function
// removes the subscription.
func (b *Bus) SubscribeCompleted(fn func(domain.SolutionRestoredEvent)) func() {
	return b.completed.subscribe(fn)
}

// OnSolutionRestoreStarted publishes a restore started event.
func (b *Bus) OnSolutionRestoreStarted(event domain.SolutionRestoreStartedEvent) {
	publish(b.logger, &b.started, event, "started")
}

// OnSolutionRestoreCompleted publishes a restore completed event.
func (b *Bus) OnSolutionRestoreCompleted(event domain.SolutionRestoredEvent) {
	publish(b.logger, &b.completed, event, "completed")
}

func publish[E any](logger ports.Logger, t *topic[E], event E, name string) {
	for _, s := range t.snapshot() {
		if r := deliver(s.fn, event); r != nil {
			err := zerr.With(domain.ErrEventHandlerPanicked, "event", name)
			logger.Error(zerr.With(err, "panic", fmt.Sprint(r)))
		}
	}
}

func deliver[E any](fn func(E), event E) (panicked any) {
	defer func() { panicked = recover() }()
	fn(event)
	return nil
}
