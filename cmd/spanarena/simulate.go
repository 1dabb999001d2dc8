package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/spanarena"
	"github.com/pavanmanishd/spanarena/internal/app1"
	"github.com/pavanmanishd/spanarena/internal/config"
	"github.com/pavanmanishd/spanarena/internal/workload"
)

var (
	simSteps       int
	simKeys        int
	simMetricSpans int
	simStepLength  time.Duration
	simSeed        uint64
	simMetrics     bool
)

func init() {
	simulateCmd.Flags().IntVar(&simSteps, "steps", 10000, "Number of simulated steps")
	simulateCmd.Flags().IntVar(&simKeys, "keys", 64, "Distinct indexed_span keys")
	simulateCmd.Flags().IntVar(&simMetricSpans, "metric-spans", 16, "Number of metrics_span instances")
	simulateCmd.Flags().DurationVar(&simStepLength, "step", 100*time.Millisecond, "Simulated time per step")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "Random seed")
	simulateCmd.Flags().BoolVar(&simMetrics, "metrics", false, "Print container metrics in Prometheus text format")
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a synthetic workload and report container statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err := cfg.Logger()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		ix := app1.New(cfg.Metrics.Interval, cfg.Options(logger)...)

		start := time.Now()
		res, err := workload.Run(ix, workload.Params{
			Steps:       simSteps,
			Keys:        simKeys,
			MetricSpans: simMetricSpans,
			StepLength:  simStepLength,
			Seed:        simSeed,
		}, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printReport(out, res, ix.Stats(), time.Since(start))

		if simMetrics {
			return printMetrics(out, ix.StatsSources())
		}
		return nil
	},
}

func printReport(out io.Writer, res workload.Result, stats []spanarena.Stats, elapsed time.Duration) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(out, "Workload (%s)\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  steps:           %d\n", res.Steps)
	fmt.Fprintf(out, "  metrics drained: %d\n", res.MetricsDrained)
	fmt.Fprintf(out, "  active/total:    %d/%d\n", res.Active, res.Total)

	if res.Leaked == 0 {
		color.New(color.FgGreen).Fprintf(out, "  leaked spans:    0\n")
	} else {
		color.New(color.FgRed, color.Bold).Fprintf(out, "  leaked spans:    %d\n", res.Leaked)
	}

	header.Fprintf(out, "\nContainers\n")
	fmt.Fprintf(out, "  %-28s %8s %8s %8s %10s %10s\n", "NAME", "LIVE", "CAP", "CHUNKS", "ALLOCS", "FREES")
	for _, s := range stats {
		fmt.Fprintf(out, "  %-28s %8d %8d %8d %10d %10d\n",
			s.Name, s.Live, s.Capacity, s.NumChunks, s.Allocs, s.Frees)
	}
}

func printMetrics(out io.Writer, sources []spanarena.StatsSource) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(spanarena.NewCollector(sources...)); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}
