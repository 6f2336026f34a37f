package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// CSVSummaryFormatter exports the terminal statistics as a metric/value CSV.
type CSVSummaryFormatter struct{}

func (c CSVSummaryFormatter) Name() string { return "csv" }

func (c CSVSummaryFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	terminal := result.Summary.Terminal
	rows := [][]string{
		{"Mean Final Balance", terminal.Mean.StringFixed(2), "Average portfolio value at the end of the horizon"},
		{"Median Final Balance", terminal.Median.StringFixed(2), "Median portfolio value at the end of the horizon"},
		{"10th Percentile", terminal.P10.StringFixed(2), "10th percentile of final portfolio values"},
		{"90th Percentile", terminal.P90.StringFixed(2), "90th percentile of final portfolio values"},
		{"Expected Monthly Income", terminal.MonthlyIncome.StringFixed(2), "Terminal mean x safe withdrawal rate / 12"},
		{"Number of Trials", strconv.Itoa(result.Summary.NumTrials), "Independent simulated paths"},
		{"Months Simulated", strconv.Itoa(result.Summary.NumMonths), "Projection length in months"},
		{"Seed", strconv.FormatInt(result.Seed, 10), "Base random seed of the run"},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVSeriesFormatter exports the per-month summary series, one row per
// month, ready for external charting.
type CSVSeriesFormatter struct{}

func (c CSVSeriesFormatter) Name() string { return "csv-series" }

func (c CSVSeriesFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Month", "Age", "Mean", "Median", "P10", "P90"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	series := result.Summary.Series
	startingAge := result.Parameters.StartingAge
	for m := range series.Mean {
		age := float64(startingAge) + float64(m)/float64(domain.MonthsPerYear)
		row := []string{
			strconv.Itoa(m),
			strconv.FormatFloat(age, 'f', 2, 64),
			series.Mean[m].StringFixed(2),
			series.Median[m].StringFixed(2),
			series.P10[m].StringFixed(2),
			series.P90[m].StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", m, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
