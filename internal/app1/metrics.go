package app1

// SomeMetricsPoint is one sample reported against a metrics_span.
type SomeMetricsPoint struct {
	Active uint64
	Total  uint64
}

// SomeMetrics is the per-timeslot aggregate of SomeMetricsPoint samples.
type SomeMetrics struct {
	Active uint64
	Total  uint64
}

// Update accumulates p into m.
func (m *SomeMetrics) Update(p SomeMetricsPoint) {
	m.Active += p.Active
	m.Total += p.Total
}

func mergeSomeMetrics(agg *SomeMetrics, p SomeMetricsPoint) {
	agg.Update(p)
}
