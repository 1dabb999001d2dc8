// Package app1 instantiates the spanarena runtime for a small sample schema.
// It is written the way schema glue is generated: one record type per span,
// typed handles and modifiers, and an Index that owns every container and
// wires the reference policies.
//
//	span simple_span                { u32 number }
//	span indexed_span               { u32 number }          index (number)
//	span span_with_manual_reference { manual_reference: simple_span }
//	span span_with_auto_reference   { u32 number; auto_reference: indexed_span(number) }
//	span span_with_cached_reference { u32 number; cached_reference: indexed_span(number) cached }
//	span metrics_span               { metrics some_metrics }
package app1

import "github.com/pavanmanishd/spanarena"

// Field numbers shared by every record with a `number` field.
const (
	fieldNumber spanarena.FieldID = iota + 1
	fieldManualReference
)

// SimpleSpan is the simple_span record.
type SimpleSpan struct {
	number uint32
}

// Number returns the number field, 0 for a nil record.
func (s *SimpleSpan) Number() uint32 {
	if s == nil {
		return 0
	}
	return s.number
}

// IndexedSpan is the indexed_span record, keyed by number.
type IndexedSpan struct {
	number uint32
}

// Number returns the number field, 0 for a nil record.
func (s *IndexedSpan) Number() uint32 {
	if s == nil {
		return 0
	}
	return s.number
}

// SpanWithManualReference is the span_with_manual_reference record.
type SpanWithManualReference struct {
	manualReference spanarena.ManualRef[SimpleSpan]
}

// SpanWithAutoReference is the span_with_auto_reference record.
type SpanWithAutoReference struct {
	number        uint32
	autoReference spanarena.AutoRef[IndexedSpan, uint32]
}

// Number returns the number field, 0 for a nil record.
func (s *SpanWithAutoReference) Number() uint32 {
	if s == nil {
		return 0
	}
	return s.number
}

// SpanWithCachedReference is the span_with_cached_reference record.
type SpanWithCachedReference struct {
	number          uint32
	cachedReference spanarena.CachedRef[IndexedSpan, uint32]
}

// Number returns the number field, 0 for a nil record.
func (s *SpanWithCachedReference) Number() uint32 {
	if s == nil {
		return 0
	}
	return s.number
}

// MetricsSpan has no fields of its own; it only anchors metrics.
type MetricsSpan struct{}
