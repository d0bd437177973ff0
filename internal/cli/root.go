package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "herdstats",
	Short: "Production analytics dashboard for dairy herds",
	Long: `herdstats serves a read-only analytics dashboard over dairy herd
production records.

Browse yearly production, lactation period breakdowns, milk yield classes and
birth month statistics, filtered by breed, lactation period, production year
and minimum lactation days.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}
