package lock

import "github.com/juju/mutex/v2"

// SetAcquire replaces the machine mutex implementation.
func (s *Service) SetAcquire(fn func(mutex.Spec) (mutex.Releaser, error)) {
	s.acquire = fn
}
