package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "spanarena",
		Short: "Span store runtime tooling",
		Long: `spanarena exercises the span store runtime: reference-counted span
containers, keyed indexes, reference fields and windowed metrics.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./spanarena.yaml)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
