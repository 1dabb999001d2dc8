package app1

import "github.com/pavanmanishd/spanarena"

// Accessors on a released handle read as zero values: with debug checks off
// the container logs the stale access and Value returns nil.

// simple_span

// SimpleSpans is the simple_span container.
type SimpleSpans struct {
	*spanarena.Container[SimpleSpan]
}

// Alloc allocates a zeroed simple_span.
func (c *SimpleSpans) Alloc() (*SimpleSpanHandle, error) {
	h, err := c.Container.Alloc()
	if err != nil {
		return nil, err
	}
	return &SimpleSpanHandle{AutoHandle: h}, nil
}

// SimpleSpanHandle owns one reference on a simple_span.
type SimpleSpanHandle struct {
	*spanarena.AutoHandle[SimpleSpan]
}

// Number reads the number field.
func (h *SimpleSpanHandle) Number() uint32 { return h.Value().Number() }

// Modify returns the typed write gate.
func (h *SimpleSpanHandle) Modify() SimpleSpanModifier {
	return SimpleSpanModifier{m: h.AutoHandle.Modify()}
}

// SimpleSpanModifier writes simple_span fields.
type SimpleSpanModifier struct {
	m *spanarena.Modifier[SimpleSpan]
}

// Number writes the number field.
func (m SimpleSpanModifier) Number(v uint32) error {
	return m.m.Set(fieldNumber, func(s *SimpleSpan) { s.number = v })
}

// indexed_span

// IndexedSpans is the indexed_span container and its index on number.
type IndexedSpans struct {
	*spanarena.Index[IndexedSpan, uint32]
}

// ByKey returns the indexed_span whose number is key, allocating it if needed.
func (c *IndexedSpans) ByKey(key uint32) (*IndexedSpanHandle, error) {
	h, err := c.Index.ByKey(key)
	if err != nil {
		return nil, err
	}
	return &IndexedSpanHandle{AutoHandle: h}, nil
}

// Len returns the number of live indexed spans.
func (c *IndexedSpans) Len() int {
	return c.Container().Len()
}

// IndexedSpanHandle owns one reference on an indexed_span.
type IndexedSpanHandle struct {
	*spanarena.AutoHandle[IndexedSpan]
}

// Number reads the key.
func (h *IndexedSpanHandle) Number() uint32 { return h.Value().Number() }

// span_with_manual_reference

// SpansWithManualReference is the span_with_manual_reference container.
type SpansWithManualReference struct {
	*spanarena.Container[SpanWithManualReference]
	ix *Index
}

// Alloc allocates a span_with_manual_reference with an unset reference.
func (c *SpansWithManualReference) Alloc() (*SpanWithManualReferenceHandle, error) {
	h, err := c.Container.Alloc()
	if err != nil {
		return nil, err
	}
	return &SpanWithManualReferenceHandle{AutoHandle: h, ix: c.ix}, nil
}

// SpanWithManualReferenceHandle owns one reference on a
// span_with_manual_reference.
type SpanWithManualReferenceHandle struct {
	*spanarena.AutoHandle[SpanWithManualReference]
	ix *Index
}

// ManualReference reads the manual_reference field.
func (h *SpanWithManualReferenceHandle) ManualReference() spanarena.Ref[SimpleSpan] {
	s := h.Value()
	if s == nil {
		return spanarena.Ref[SimpleSpan]{}
	}
	return s.manualReference.Ref(h.ix.SimpleSpan.Container)
}

// Modify returns the typed write gate.
func (h *SpanWithManualReferenceHandle) Modify() SpanWithManualReferenceModifier {
	return SpanWithManualReferenceModifier{m: h.AutoHandle.Modify(), ix: h.ix}
}

// SpanWithManualReferenceModifier writes span_with_manual_reference fields.
type SpanWithManualReferenceModifier struct {
	m  *spanarena.Modifier[SpanWithManualReference]
	ix *Index
}

// ManualReference points the field at target, which must belong to the
// simple_span container. An invalid target clears the field.
func (m SpanWithManualReferenceModifier) ManualReference(target spanarena.Ref[SimpleSpan]) error {
	return m.m.Set(fieldManualReference, func(s *SpanWithManualReference) {
		s.manualReference.Assign(m.ix.SimpleSpan.Container, target.Loc())
	})
}

// span_with_auto_reference

// SpansWithAutoReference is the span_with_auto_reference container.
type SpansWithAutoReference struct {
	*spanarena.Container[SpanWithAutoReference]
	ix *Index
}

// Alloc allocates a span_with_auto_reference. Its reference stays unset until
// number is first written.
func (c *SpansWithAutoReference) Alloc() (*SpanWithAutoReferenceHandle, error) {
	h, err := c.Container.Alloc()
	if err != nil {
		return nil, err
	}
	return &SpanWithAutoReferenceHandle{AutoHandle: h, ix: c.ix}, nil
}

// SpanWithAutoReferenceHandle owns one reference on a span_with_auto_reference.
type SpanWithAutoReferenceHandle struct {
	*spanarena.AutoHandle[SpanWithAutoReference]
	ix *Index
}

// Number reads the number field.
func (h *SpanWithAutoReferenceHandle) Number() uint32 { return h.Value().Number() }

// AutoReference reads the auto_reference field. It is invalid until number
// has been written.
func (h *SpanWithAutoReferenceHandle) AutoReference() spanarena.Ref[IndexedSpan] {
	s := h.Value()
	if s == nil {
		return spanarena.Ref[IndexedSpan]{}
	}
	return s.autoReference.Ref(h.ix.IndexedSpan.Index)
}

// Modify returns the typed write gate.
func (h *SpanWithAutoReferenceHandle) Modify() SpanWithAutoReferenceModifier {
	return SpanWithAutoReferenceModifier{m: h.AutoHandle.Modify()}
}

// SpanWithAutoReferenceModifier writes span_with_auto_reference fields.
type SpanWithAutoReferenceModifier struct {
	m *spanarena.Modifier[SpanWithAutoReference]
}

// Number writes number and recomputes auto_reference before returning.
func (m SpanWithAutoReferenceModifier) Number(v uint32) error {
	return m.m.Set(fieldNumber, func(s *SpanWithAutoReference) { s.number = v })
}

// span_with_cached_reference

// SpansWithCachedReference is the span_with_cached_reference container.
type SpansWithCachedReference struct {
	*spanarena.Container[SpanWithCachedReference]
	ix *Index
}

// Alloc allocates a span_with_cached_reference.
func (c *SpansWithCachedReference) Alloc() (*SpanWithCachedReferenceHandle, error) {
	h, err := c.Container.Alloc()
	if err != nil {
		return nil, err
	}
	return &SpanWithCachedReferenceHandle{AutoHandle: h, ix: c.ix}, nil
}

// SpanWithCachedReferenceHandle owns one reference on a
// span_with_cached_reference.
type SpanWithCachedReferenceHandle struct {
	*spanarena.AutoHandle[SpanWithCachedReference]
	ix *Index
}

// Number reads the number field.
func (h *SpanWithCachedReferenceHandle) Number() uint32 { return h.Value().Number() }

// CachedReference reads the cached_reference field, recomputing it first if
// number changed since the last read.
func (h *SpanWithCachedReferenceHandle) CachedReference() (spanarena.Ref[IndexedSpan], error) {
	s := h.Value()
	if s == nil {
		return spanarena.Ref[IndexedSpan]{}, spanarena.ErrInvalidLocation
	}
	return s.cachedReference.Resolve(h.ix.IndexedSpan.Index)
}

// Modify returns the typed write gate.
func (h *SpanWithCachedReferenceHandle) Modify() SpanWithCachedReferenceModifier {
	return SpanWithCachedReferenceModifier{m: h.AutoHandle.Modify()}
}

// SpanWithCachedReferenceModifier writes span_with_cached_reference fields.
type SpanWithCachedReferenceModifier struct {
	m *spanarena.Modifier[SpanWithCachedReference]
}

// Number writes number and marks cached_reference for recomputation.
func (m SpanWithCachedReferenceModifier) Number(v uint32) error {
	return m.m.Set(fieldNumber, func(s *SpanWithCachedReference) { s.number = v })
}

// metrics_span

// MetricsSpans is the metrics_span container and its metrics store.
type MetricsSpans struct {
	*spanarena.Container[MetricsSpan]
	Metrics *spanarena.MetricsStore[MetricsSpan, SomeMetricsPoint, SomeMetrics]
}

// Alloc allocates a metrics_span.
func (c *MetricsSpans) Alloc() (*MetricsSpanHandle, error) {
	h, err := c.Container.Alloc()
	if err != nil {
		return nil, err
	}
	return &MetricsSpanHandle{AutoHandle: h, metrics: c.Metrics}, nil
}

// MetricsReady reports whether a timeslot has closed at now.
func (c *MetricsSpans) MetricsReady(now uint64) bool {
	return c.Metrics.Ready(now)
}

// MetricsForeach drains closed timeslots.
func (c *MetricsSpans) MetricsForeach(now uint64, visit spanarena.MetricsVisitor[MetricsSpan, SomeMetrics]) {
	c.Metrics.Foreach(now, visit)
}

// MetricsSpanHandle owns one reference on a metrics_span.
type MetricsSpanHandle struct {
	*spanarena.AutoHandle[MetricsSpan]
	metrics *spanarena.MetricsStore[MetricsSpan, SomeMetricsPoint, SomeMetrics]
}

// MetricsUpdate records p against this span at timestamp.
func (h *MetricsSpanHandle) MetricsUpdate(timestamp uint64, p SomeMetricsPoint) error {
	return h.metrics.Update(h.Loc(), timestamp, p)
}
