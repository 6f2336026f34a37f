package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/internal/domain"
	"github.com/rpsim/portfolio-simulator/pkg/money"
)

// ConsoleFormatter renders a concise terminal summary of a simulation run:
// the terminal distribution plus the monthly retirement income each
// percentile would sustain at the configured safe withdrawal rate.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	params := result.Parameters
	terminal := result.Summary.Terminal
	rate := params.WithdrawalRate()

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PORTFOLIO SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Ages: %d -> %d (retire at %d), %d trials, seed %d\n",
		params.StartingAge, params.Horizon(), params.RetirementAge, result.Summary.NumTrials, result.Seed)
	fmt.Fprintf(&buf, "Expected Return: %s/yr  Volatility: %s/yr  Inflation: %s/yr\n",
		FormatPercentage(params.AnnualReturn),
		FormatPercentage(params.AnnualVolatility),
		FormatPercentage(params.InflationRate))
	fmt.Fprintln(&buf)

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Average Final Balance", terminal.Mean},
		{"Median Final Balance", terminal.Median},
		{"10th Percentile", terminal.P10},
		{"90th Percentile", terminal.P90},
	}
	for _, row := range rows {
		income := money.FromDecimal(row.value.Mul(rate)).Monthly()
		fmt.Fprintf(&buf, "%-24s %15s  (monthly income %s)\n",
			row.label+":",
			FormatCurrencyWhole(row.value),
			income.FormatWhole())
	}

	fmt.Fprintln(&buf)
	annual := money.FromDecimal(terminal.MonthlyIncome).Annual().Round()
	fmt.Fprintf(&buf, "Expected Monthly Retirement Income: %s (%s/yr at %s withdrawal rate)\n",
		FormatCurrencyWhole(terminal.MonthlyIncome),
		annual.Format(),
		FormatPercentage(rate))

	return buf.Bytes(), nil
}
