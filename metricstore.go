package spanarena

import (
	"cmp"
	"slices"
	"time"
)

// DefaultMetricsInterval is the timeslot width used when a store is created
// with a non-positive interval.
const DefaultMetricsInterval = time.Second

// metricsEntry is the aggregate for one span in one timeslot. The store holds
// one reference on span for as long as the entry exists.
type metricsEntry[A any] struct {
	span Location
	agg  A
}

// timeslot groups the entries of one interval-wide bucket, in the order the
// spans first reported into it.
type timeslot[A any] struct {
	id      uint64
	entries []metricsEntry[A]
	bySpan  map[Location]int
}

// MetricsVisitor receives one drained entry: the bucket start timestamp, the
// span that owns the entry, the merged aggregate and the bucket width. The
// aggregate pointer is only valid during the call.
type MetricsVisitor[T, A any] func(timestamp uint64, span Ref[T], agg *A, interval uint64)

// MetricsStore buckets samples per span into fixed-width timeslots. Each
// (span, timeslot) entry keeps its span allocated until Foreach drains it.
// Timestamps and the interval share one unit, nanoseconds by convention.
type MetricsStore[T, S, A any] struct {
	c        *Container[T]
	interval uint64
	merge    func(agg *A, sample S)
	queue    []*timeslot[A]
	pending  int
}

// NewMetricsStore creates a store over spans of c. merge folds a sample into
// an aggregate in place; it must be associative, and the first sample of an
// entry is merged into a zero A.
func NewMetricsStore[T, S, A any](c *Container[T], interval time.Duration, merge func(agg *A, sample S)) *MetricsStore[T, S, A] {
	if interval <= 0 {
		interval = DefaultMetricsInterval
	}
	return &MetricsStore[T, S, A]{
		c:        c,
		interval: uint64(interval),
		merge:    merge,
	}
}

// Interval returns the timeslot width.
func (m *MetricsStore[T, S, A]) Interval() uint64 {
	return m.interval
}

// Len returns the number of undrained (span, timeslot) entries.
func (m *MetricsStore[T, S, A]) Len() int {
	return m.pending
}

// Empty reports whether no entries are pending.
func (m *MetricsStore[T, S, A]) Empty() bool {
	return m.pending == 0
}

// Update merges sample into span's entry for the timeslot containing
// timestamp. The first sample of an entry retains span.
func (m *MetricsStore[T, S, A]) Update(span Location, timestamp uint64, sample S) error {
	if !m.c.Valid(span) {
		return ErrInvalidLocation
	}
	ts := m.slotFor(timestamp / m.interval)
	i, ok := ts.bySpan[span]
	if !ok {
		m.c.Retain(span)
		ts.entries = append(ts.entries, metricsEntry[A]{span: span})
		i = len(ts.entries) - 1
		ts.bySpan[span] = i
		m.pending++
	}
	m.merge(&ts.entries[i].agg, sample)
	return nil
}

// slotFor returns the timeslot with the given id, inserting it in order if
// missing. Samples mostly arrive in time order, so the common case appends.
func (m *MetricsStore[T, S, A]) slotFor(id uint64) *timeslot[A] {
	if n := len(m.queue); n > 0 && m.queue[n-1].id == id {
		return m.queue[n-1]
	}
	i, found := slices.BinarySearchFunc(m.queue, id, func(ts *timeslot[A], id uint64) int {
		return cmp.Compare(ts.id, id)
	})
	if found {
		return m.queue[i]
	}
	ts := &timeslot[A]{id: id, bySpan: make(map[Location]int)}
	m.queue = slices.Insert(m.queue, i, ts)
	return ts
}

// eligible reports whether the bucket with the given id has closed at now:
// one extra interval of grace is allowed for late samples.
func (m *MetricsStore[T, S, A]) eligible(id, now uint64) bool {
	start := id * m.interval
	return now >= start && now-start >= 2*m.interval
}

// Ready reports whether Foreach(now) would visit at least one entry.
func (m *MetricsStore[T, S, A]) Ready(now uint64) bool {
	return len(m.queue) > 0 && m.eligible(m.queue[0].id, now)
}

// Foreach drains every entry whose timeslot has closed at now, oldest first.
// Each entry is visited, removed, and then its span reference is released, so
// a span kept alive only by the store is freed right after its visit. Entries
// of open timeslots are left for a later call.
func (m *MetricsStore[T, S, A]) Foreach(now uint64, visit MetricsVisitor[T, A]) {
	for len(m.queue) > 0 && m.eligible(m.queue[0].id, now) {
		ts := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		start := ts.id * m.interval
		for i := range ts.entries {
			e := &ts.entries[i]
			m.pending--
			visit(start, Ref[T]{c: m.c, loc: e.span}, &e.agg, m.interval)
			m.c.Release(e.span)
		}
	}
}
