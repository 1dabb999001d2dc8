package app1

import (
	"time"

	"github.com/pavanmanishd/spanarena"
)

// Index owns one container per span type of the schema.
type Index struct {
	SimpleSpan              *SimpleSpans
	IndexedSpan             *IndexedSpans
	SpanWithManualReference *SpansWithManualReference
	SpanWithAutoReference   *SpansWithAutoReference
	SpanWithCachedReference *SpansWithCachedReference
	MetricsSpan             *MetricsSpans
}

// New builds an Index. opts apply to every container; each container is
// additionally named after its span type.
func New(metricsInterval time.Duration, opts ...spanarena.Option) *Index {
	named := func(name string) []spanarena.Option {
		return append(append([]spanarena.Option(nil), opts...), spanarena.WithName(name))
	}

	ix := &Index{}

	ix.SimpleSpan = &SimpleSpans{
		Container: spanarena.NewContainer[SimpleSpan](named("simple_span")...),
	}

	indexed := spanarena.NewContainer[IndexedSpan](named("indexed_span")...)
	ix.IndexedSpan = &IndexedSpans{
		Index: spanarena.NewIndex(indexed,
			func(s *IndexedSpan) uint32 { return s.number },
			func(s *IndexedSpan, k uint32) { s.number = k },
		),
	}

	manual := spanarena.NewContainer[SpanWithManualReference](named("span_with_manual_reference")...)
	manual.OnFree(func(_ spanarena.Location, s *SpanWithManualReference) {
		s.manualReference.Release(ix.SimpleSpan.Container)
	})
	ix.SpanWithManualReference = &SpansWithManualReference{Container: manual, ix: ix}

	auto := spanarena.NewContainer[SpanWithAutoReference](named("span_with_auto_reference")...)
	auto.OnWrite(fieldNumber, func(_ spanarena.Location, s *SpanWithAutoReference) error {
		return s.autoReference.Update(ix.IndexedSpan.Index, s.number)
	})
	auto.OnFree(func(_ spanarena.Location, s *SpanWithAutoReference) {
		s.autoReference.Release(ix.IndexedSpan.Index)
	})
	ix.SpanWithAutoReference = &SpansWithAutoReference{Container: auto, ix: ix}

	cached := spanarena.NewContainer[SpanWithCachedReference](named("span_with_cached_reference")...)
	cached.OnWrite(fieldNumber, func(_ spanarena.Location, s *SpanWithCachedReference) error {
		s.cachedReference.Mark(s.number)
		return nil
	})
	cached.OnFree(func(_ spanarena.Location, s *SpanWithCachedReference) {
		s.cachedReference.Release(ix.IndexedSpan.Index)
	})
	ix.SpanWithCachedReference = &SpansWithCachedReference{Container: cached, ix: ix}

	metrics := spanarena.NewContainer[MetricsSpan](named("metrics_span")...)
	ix.MetricsSpan = &MetricsSpans{
		Container: metrics,
		Metrics:   spanarena.NewMetricsStore(metrics, metricsInterval, mergeSomeMetrics),
	}

	return ix
}

// StatsSources returns the containers of the index for stats reporting.
func (ix *Index) StatsSources() []spanarena.StatsSource {
	return []spanarena.StatsSource{
		ix.SimpleSpan.Container,
		ix.IndexedSpan.Container(),
		ix.SpanWithManualReference.Container,
		ix.SpanWithAutoReference.Container,
		ix.SpanWithCachedReference.Container,
		ix.MetricsSpan.Container,
	}
}

// Stats returns one snapshot per container, in StatsSources order.
func (ix *Index) Stats() []spanarena.Stats {
	sources := ix.StatsSources()
	out := make([]spanarena.Stats, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Stats())
	}
	return out
}

// Live returns the total number of live spans across all containers.
func (ix *Index) Live() int {
	n := 0
	for _, s := range ix.Stats() {
		n += s.Live
	}
	return n
}
