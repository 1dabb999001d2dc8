package workload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pavanmanishd/spanarena/internal/app1"
)

func TestRunReleasesEverything(t *testing.T) {
	ix := app1.New(time.Second)

	res, err := Run(ix, Params{
		Steps:       500,
		Keys:        16,
		MetricSpans: 8,
		StepLength:  100 * time.Millisecond,
		Seed:        1,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Equal(t, 500, res.Steps)
	require.Equal(t, 0, res.Leaked)
	require.Equal(t, uint64(500*10), res.Total, "every sample is delivered exactly once")
	require.Positive(t, res.MetricsDrained)
	require.True(t, ix.MetricsSpan.Metrics.Empty())

	for _, s := range ix.Stats() {
		require.Equal(t, s.Allocs, s.Frees, "container %s", s.Name)
	}
}

func TestRunDeterministic(t *testing.T) {
	p := Params{Steps: 200, Keys: 4, MetricSpans: 3, StepLength: time.Second, Seed: 42}

	a, err := Run(app1.New(time.Second), p, zaptest.NewLogger(t))
	require.NoError(t, err)
	b, err := Run(app1.New(time.Second), p, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRunInvalidParams(t *testing.T) {
	_, err := Run(app1.New(time.Second), Params{Steps: 1}, zaptest.NewLogger(t))
	require.Error(t, err)
}
