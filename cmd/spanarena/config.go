package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/spanarena/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "container.chunk_size:   %d\n", cfg.Container.ChunkSize)
		fmt.Fprintf(out, "container.max_slots:    %d\n", cfg.Container.MaxSlots)
		fmt.Fprintf(out, "container.debug_checks: %v\n", cfg.Container.DebugChecks)
		fmt.Fprintf(out, "metrics.interval:       %s\n", cfg.Metrics.Interval)
		fmt.Fprintf(out, "log.development:        %v\n", cfg.Log.Development)
		fmt.Fprintf(out, "log.level:              %s\n", cfg.Log.Level)
		return nil
	},
}
