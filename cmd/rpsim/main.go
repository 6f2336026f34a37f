package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpsim/portfolio-simulator/internal/config"
	"github.com/rpsim/portfolio-simulator/internal/domain"
	"github.com/rpsim/portfolio-simulator/internal/output"
	"github.com/rpsim/portfolio-simulator/internal/simulation"
)

var (
	configFile       string
	format           string
	trials           int
	seed             int64
	outputFile       string
	verbose          bool
	annualReturn     float64
	annualVolatility float64
)

// stderrLogger writes engine logs to stderr so formatted results on stdout
// stay machine-readable.
type stderrLogger struct{ debug bool }

func (l stderrLogger) Debugf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
	}
}
func (l stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
func (l stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}
func (l stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

var rootCmd = &cobra.Command{
	Use:   "rpsim",
	Short: "Monte Carlo retirement portfolio simulator",
	Long: `rpsim projects a retirement portfolio under uncertain market returns by
running many independent randomized growth paths and summarizing the
distribution of outcomes (mean, median, 10th/90th percentile per month).`,
	RunE:          runSimulation,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example parameter file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(config.NewInputParser().CreateExampleInput())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML parameter file (built-in example scenario when omitted)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	rootCmd.Flags().IntVarP(&trials, "trials", "n", 0, "override number of trials")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed for reproducible runs (0 = time-based)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write result to file instead of stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().Float64Var(&annualReturn, "annual-return", 0, "override expected annual return (fraction, e.g. 0.07)")
	rootCmd.Flags().Float64Var(&annualVolatility, "annual-volatility", 0, "override annual volatility (fraction, e.g. 0.15)")
	rootCmd.AddCommand(exampleCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()

	var input *config.Input
	if configFile != "" {
		loaded, err := parser.LoadFromFile(configFile)
		if err != nil {
			return err
		}
		input = loaded
	} else {
		input = parser.CreateExampleInput()
	}

	if cmd.Flags().Changed("annual-return") {
		d, err := domain.DecimalFromFloat("annual-return", annualReturn)
		if err != nil {
			return err
		}
		input.Parameters.AnnualReturn = d
	}
	if cmd.Flags().Changed("annual-volatility") {
		d, err := domain.DecimalFromFloat("annual-volatility", annualVolatility)
		if err != nil {
			return err
		}
		input.Parameters.AnnualVolatility = d
	}
	if trials > 0 {
		input.Simulation.NumTrials = trials
	}
	if cmd.Flags().Changed("seed") {
		input.Simulation.Seed = seed
	}

	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	engine := simulation.NewEngine()
	engine.SetLogger(stderrLogger{debug: verbose})

	result, err := engine.Run(ctx, input.Parameters, input.Simulation.NumTrials, input.Simulation.Seed)
	if err != nil {
		return err
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", outputFile)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
