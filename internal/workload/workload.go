// Package workload replays a synthetic span workload against an app1 index:
// spans keyed through auto and cached references, manual references between
// spans, and per-span metrics drained as timeslots close.
package workload

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/pavanmanishd/spanarena"
	"github.com/pavanmanishd/spanarena/internal/app1"
)

// Params shapes a run.
type Params struct {
	Steps       int           // Number of simulated steps
	Keys        int           // Distinct indexed_span keys
	MetricSpans int           // Population of metrics_span
	StepLength  time.Duration // Simulated time per step
	Seed        uint64
}

// Result summarizes a run.
type Result struct {
	Steps          int
	MetricsDrained int
	Active         uint64
	Total          uint64
	Leaked         int // Live spans left after every handle was released
}

// Run drives ix for p.Steps steps and releases everything it allocated.
func Run(ix *app1.Index, p Params, logger *zap.Logger) (Result, error) {
	if p.Keys <= 0 || p.MetricSpans <= 0 || p.StepLength <= 0 {
		return Result{}, fmt.Errorf("invalid workload params: %+v", p)
	}
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	res := Result{Steps: p.Steps}

	metricSpans := make([]*app1.MetricsSpanHandle, 0, p.MetricSpans)
	for i := 0; i < p.MetricSpans; i++ {
		h, err := ix.MetricsSpan.Alloc()
		if err != nil {
			return res, fmt.Errorf("alloc metrics span: %w", err)
		}
		metricSpans = append(metricSpans, h)
	}

	drain := func(now uint64) {
		ix.MetricsSpan.MetricsForeach(now, func(_ uint64, _ spanarena.Ref[app1.MetricsSpan], agg *app1.SomeMetrics, _ uint64) {
			res.MetricsDrained++
			res.Active += agg.Active
			res.Total += agg.Total
		})
	}

	step := uint64(p.StepLength)
	var now uint64
	for i := 0; i < p.Steps; i++ {
		now = uint64(i+1) * step

		if err := churn(ix, rng, p.Keys); err != nil {
			return res, err
		}

		h := metricSpans[rng.IntN(len(metricSpans))]
		point := app1.SomeMetricsPoint{Active: rng.Uint64N(10), Total: 10}
		if err := h.MetricsUpdate(now, point); err != nil {
			return res, fmt.Errorf("metrics update: %w", err)
		}

		if ix.MetricsSpan.MetricsReady(now) {
			drain(now)
		}
	}

	for _, h := range metricSpans {
		h.Put()
	}
	// Flush whatever is still open; this drops the last references.
	drain(now + 2*ix.MetricsSpan.Metrics.Interval())

	res.Leaked = ix.Live()
	logger.Info("workload finished",
		zap.Int("steps", res.Steps),
		zap.Int("metrics_drained", res.MetricsDrained),
		zap.Int("leaked", res.Leaked),
	)
	return res, nil
}

// churn exercises one round of every reference policy.
func churn(ix *app1.Index, rng *rand.Rand, keys int) error {
	key := func() uint32 { return uint32(rng.IntN(keys)) }

	auto, err := ix.SpanWithAutoReference.Alloc()
	if err != nil {
		return fmt.Errorf("alloc auto span: %w", err)
	}
	defer auto.Put()
	for j := 0; j < 3; j++ {
		if err := auto.Modify().Number(key()); err != nil {
			return fmt.Errorf("auto reference: %w", err)
		}
	}

	cached, err := ix.SpanWithCachedReference.Alloc()
	if err != nil {
		return fmt.Errorf("alloc cached span: %w", err)
	}
	defer cached.Put()
	for j := 0; j < 3; j++ {
		if err := cached.Modify().Number(key()); err != nil {
			return fmt.Errorf("cached reference: %w", err)
		}
	}
	if _, err := cached.CachedReference(); err != nil {
		return fmt.Errorf("cached reference: %w", err)
	}

	simple, err := ix.SimpleSpan.Alloc()
	if err != nil {
		return fmt.Errorf("alloc simple span: %w", err)
	}
	defer simple.Put()
	manual, err := ix.SpanWithManualReference.Alloc()
	if err != nil {
		return fmt.Errorf("alloc manual span: %w", err)
	}
	defer manual.Put()
	return manual.Modify().ManualReference(simple.Get())
}
