package worker

import (
	"sync"

	"github.com/google/uuid"
)

// Operation is a restore execution that callers can wait on. It completes exactly once.
type Operation struct {
	id     uuid.UUID
	done   chan struct{}
	once   sync.Once
	result bool
}

func newOperation() *Operation {
	return &Operation{id: uuid.New(), done: make(chan struct{})}
}

func completedOperation(result bool) *Operation {
	op := newOperation()
	op.complete(result)
	return op
}

// ID identifies the operation.
func (o *Operation) ID() uuid.UUID {
	return o.id
}

// Done is closed when the operation completes.
func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Result reports whether the operation succeeded. It is false until Done is closed.
func (o *Operation) Result() bool {
	select {
	case <-o.done:
		return o.result
	default:
		return false
	}
}

// IsCompleted reports whether the operation has completed.
func (o *Operation) IsCompleted() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// complete resolves the operation. Later calls are ignored.
func (o *Operation) complete(result bool) {
	o.once.Do(func() {
		o.result = result
		close(o.done)
	})
}
