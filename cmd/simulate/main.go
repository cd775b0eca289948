// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command simulate runs a single binary-consensus simulation scenario
// and writes its result table to a file: flag parsing, reading the
// scenario file, and serializing output all live here, out of the
// simulation core's scope.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/logos-co/consensus-research/scenario"
	"github.com/logos-co/consensus-research/simulate"
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Snowball/Claro binary-consensus simulation scenario",
	Long: `simulate loads a scenario description (consensus backend choice,
node population, byzantine mix, simulation style, wards, and network
modifiers), runs it to completion, and writes the resulting per-round
opinion table to a file.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.Flags().String("scenario", "", "path to the input scenario YAML file (required)")
	rootCmd.Flags().String("out", "", "path to the output result-table file (required)")
	rootCmd.Flags().String("format", "csv", "output format: csv or json")
	rootCmd.Flags().Bool("verbose", false, "emit structured progress logging")
	rootCmd.Flags().String("metrics-out", "", "path to write a final Prometheus text-format metrics snapshot (optional)")
	_ = rootCmd.MarkFlagRequired("scenario")
	_ = rootCmd.MarkFlagRequired("out")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	outPath, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	metricsPath, _ := cmd.Flags().GetString("metrics-out")

	s, err := loadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	driver := simulate.Driver{}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()
		driver.Logger = logger
	}

	var registry *prometheus.Registry
	if metricsPath != "" {
		registry = prometheus.NewRegistry()
		driver.Registerer = registry
	}

	table, err := driver.Run(cmd.Context(), s)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	if registry != nil {
		if err := writeMetrics(metricsPath, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	switch format {
	case "csv":
		return writeCSV(outPath, table)
	case "json":
		return writeJSON(outPath, table)
	default:
		return fmt.Errorf("unknown output format %q: expected csv or json", format)
	}
}

func writeMetrics(path string, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func loadScenario(path string) (scenario.Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scenario.Scenario{}, err
	}
	var s scenario.Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return scenario.Scenario{}, fmt.Errorf("parsing yaml: %w", err)
	}
	return s, nil
}

func writeCSV(path string, table *simulate.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := table.Encode()
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = strconv.Itoa(int(cell))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeJSON(path string, table *simulate.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	return enc.Encode(table.Encode())
}
