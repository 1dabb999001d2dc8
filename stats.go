package spanarena

import "github.com/prometheus/client_golang/prometheus"

// Stats is a snapshot of container bookkeeping.
type Stats struct {
	Name        string  // Label given with WithName
	Live        int     // Slots with refcount > 0
	Capacity    int     // Slots backed by allocated chunks
	FreeSlots   int     // Previously used slots waiting on the free list
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Slots per chunk
	Allocs      uint64  // Slots handed out since creation
	Frees       uint64  // Slots freed since creation
	Utilization float64 // Live / Capacity (0.0-1.0)
}

// Capacity returns the number of slots backed by allocated chunks.
func (c *Container[T]) Capacity() int {
	return len(c.chunks) * c.cfg.chunkSize
}

// NumChunks returns the number of chunks allocated so far.
func (c *Container[T]) NumChunks() int {
	return len(c.chunks)
}

// ChunkSize returns the number of slots added per growth step.
func (c *Container[T]) ChunkSize() int {
	return c.cfg.chunkSize
}

// Utilization returns the ratio of live slots to capacity (0.0 to 1.0).
// Returns 0.0 before the first allocation.
func (c *Container[T]) Utilization() float64 {
	capacity := c.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(c.live) / float64(capacity)
}

// Stats returns a snapshot of container statistics.
func (c *Container[T]) Stats() Stats {
	return Stats{
		Name:        c.cfg.name,
		Live:        c.live,
		Capacity:    c.Capacity(),
		FreeSlots:   len(c.free),
		NumChunks:   c.NumChunks(),
		ChunkSize:   c.ChunkSize(),
		Allocs:      c.allocs,
		Frees:       c.frees,
		Utilization: c.Utilization(),
	}
}

// StatsSource is anything that can report container statistics. Every
// *Container satisfies it, as does an Exclusive wrapping one.
type StatsSource interface {
	Stats() Stats
}

// StatsFunc adapts a plain function to StatsSource.
type StatsFunc func() Stats

// Stats calls f.
func (f StatsFunc) Stats() Stats {
	return f()
}

var (
	liveDesc = prometheus.NewDesc(
		"spanarena_live_slots",
		"Number of live slots in the container.",
		[]string{"container"}, nil)
	capacityDesc = prometheus.NewDesc(
		"spanarena_capacity_slots",
		"Number of slots backed by allocated chunks.",
		[]string{"container"}, nil)
	allocsDesc = prometheus.NewDesc(
		"spanarena_allocs_total",
		"Slots handed out since the container was created.",
		[]string{"container"}, nil)
	freesDesc = prometheus.NewDesc(
		"spanarena_frees_total",
		"Slots freed since the container was created.",
		[]string{"container"}, nil)
)

// Collector exports container statistics to Prometheus. Sources are read on
// every scrape, so the caller must make Stats safe to call from the scraping
// goroutine (for example by wrapping it in Exclusive).
type Collector struct {
	sources []StatsSource
}

// NewCollector returns a collector over the given sources. Sources are
// labelled by their Stats().Name.
func NewCollector(sources ...StatsSource) *Collector {
	return &Collector{sources: sources}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- liveDesc
	ch <- capacityDesc
	ch <- allocsDesc
	ch <- freesDesc
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, src := range col.sources {
		s := src.Stats()
		ch <- prometheus.MustNewConstMetric(liveDesc, prometheus.GaugeValue, float64(s.Live), s.Name)
		ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue, float64(s.Capacity), s.Name)
		ch <- prometheus.MustNewConstMetric(allocsDesc, prometheus.CounterValue, float64(s.Allocs), s.Name)
		ch <- prometheus.MustNewConstMetric(freesDesc, prometheus.CounterValue, float64(s.Frees), s.Name)
	}
}
