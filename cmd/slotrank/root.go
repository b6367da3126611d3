package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	tzOverride   string
)

var rootCmd = &cobra.Command{
	Use:   "slotrank",
	Short: "Replay scheduling scenarios through the matching engine",
	Long: "slotrank loads a YAML scenario (tenant proposals plus a contractor schedule) " +
		"and prints what the matching engine decides, without touching any database.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "file", "f", "", "scenario file (default: SLOTRANK_SCENARIO env var or ./scenario.yaml)")
	rootCmd.PersistentFlags().StringVar(&tzOverride, "tz", "", "IANA timezone for wall-clock times, overrides the scenario's timezone")
}

// loadScenario resolves the scenario path and parses it.
// Priority: --file > SLOTRANK_SCENARIO env var > "./scenario.yaml"
func loadScenario() (*Scenario, error) {
	path := scenarioPath
	if path == "" {
		if env := os.Getenv("SLOTRANK_SCENARIO"); env != "" {
			path = env
		} else {
			path = "scenario.yaml"
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data, tzOverride)
}
