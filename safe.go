package spanarena

import "sync"

// Exclusive guards a store (a Container, an Index, or a schema's whole set of
// them) with one mutex. The core types do no locking of their own; this is
// the single-lock deployment for sharing them between goroutines. The lock
// must span complete operations such as ByKey plus the writes that follow.
type Exclusive[S any] struct {
	mu sync.Mutex
	s  S
}

// NewExclusive wraps s. s must not be used except through the wrapper.
func NewExclusive[S any](s S) *Exclusive[S] {
	return &Exclusive[S]{s: s}
}

// Do runs fn with the lock held.
func (e *Exclusive[S]) Do(fn func(S)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.s)
}

// DoErr runs fn with the lock held and returns its error.
func (e *Exclusive[S]) DoErr(fn func(S) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Stats thread-safely returns the statistics of the wrapped value, when it
// reports any. Values that do not implement StatsSource yield a zero Stats.
func (e *Exclusive[S]) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	if src, ok := any(e.s).(StatsSource); ok {
		return src.Stats()
	}
	return Stats{}
}
