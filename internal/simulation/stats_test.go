package simulation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestMean(t *testing.T) {
	got := mean(decimals(10, 20, 30, 40, 50))
	if !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected mean 30, got %s", got)
	}
}

func TestPercentileLinearInterpolation(t *testing.T) {
	sorted := decimals(10, 20, 30, 40, 50)

	cases := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{10, 14}, // rank 0.4: 10 + 0.4*(20-10)
		{25, 20}, // rank 1.0: exact order statistic
		{50, 30}, // median
		{90, 46}, // rank 3.6: 40 + 0.6*(50-40)
		{100, 50},
	}
	for _, tc := range cases {
		got := percentile(sorted, tc.q).InexactFloat64()
		if got != tc.want {
			t.Errorf("p%.0f: expected %v, got %v", tc.q, tc.want, got)
		}
	}
}

func TestPercentileSingleValue(t *testing.T) {
	got := percentile(decimals(42), 90)
	if !got.Equal(decimal.NewFromInt(42)) {
		t.Errorf("Expected 42, got %s", got)
	}
}

func TestSummarizeOrderingAndIncome(t *testing.T) {
	params := domain.SimulationParameters{
		StartingAge:   60,
		RetirementAge: 61,
	}
	// Three flat paths so every month column is {100, 200, 600}.
	paths := make([]domain.Path, 3)
	for i, v := range []int64{600, 100, 200} {
		values := make([]decimal.Decimal, 3)
		for m := range values {
			values[m] = decimal.NewFromInt(v)
		}
		paths[i] = domain.Path{Values: values, Returns: make([]decimal.Decimal, 2)}
	}

	summary := summarize(params, domain.Ensemble{Paths: paths})

	if summary.NumTrials != 3 || summary.NumMonths != 2 {
		t.Fatalf("Expected 3 trials over 2 months, got %d/%d", summary.NumTrials, summary.NumMonths)
	}
	if !summary.Terminal.Mean.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected terminal mean 300, got %s", summary.Terminal.Mean)
	}
	if !summary.Terminal.Median.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected terminal median 200, got %s", summary.Terminal.Median)
	}
	for m := range summary.Series.Mean {
		p10 := summary.Series.P10[m]
		p90 := summary.Series.P90[m]
		if summary.Series.Median[m].LessThan(p10) || summary.Series.Median[m].GreaterThan(p90) {
			t.Errorf("Month %d: median outside [p10, p90]", m)
		}
	}

	// 300 * 0.04 / 12 = 1 at the default safe withdrawal rate.
	if !summary.Terminal.MonthlyIncome.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected monthly income 1, got %s", summary.Terminal.MonthlyIncome)
	}
}
