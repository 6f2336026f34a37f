package simulation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// mean computes the arithmetic mean of values.
func mean(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// percentile computes the q-th percentile (0-100) of an ascending-sorted
// slice by linear interpolation between order statistics: the value at rank
// q/100*(n-1), interpolating when the rank falls between two elements. The
// rule is fixed here rather than borrowed from a library so that results
// are reproducible across versions.
func percentile(sorted []decimal.Decimal, q float64) decimal.Decimal {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if frac == 0 || lo+1 >= n {
		return sorted[lo]
	}
	delta := sorted[lo+1].Sub(sorted[lo])
	return sorted[lo].Add(delta.Mul(decimal.NewFromFloat(frac)))
}

// summarize reduces an ensemble into per-month and terminal statistics.
// Every month column is sorted once and reduced with the same fixed
// percentile rule, so two runs over identical ensembles are bit-identical.
func summarize(params domain.SimulationParameters, ensemble domain.Ensemble) domain.SummaryStatistics {
	numPoints := len(ensemble.Paths[0].Values)
	series := domain.SummarySeries{
		Mean:   make([]decimal.Decimal, numPoints),
		Median: make([]decimal.Decimal, numPoints),
		P10:    make([]decimal.Decimal, numPoints),
		P90:    make([]decimal.Decimal, numPoints),
	}

	column := make([]decimal.Decimal, ensemble.NumTrials())
	for t := 0; t < numPoints; t++ {
		for i, path := range ensemble.Paths {
			column[i] = path.Values[t]
		}
		sort.Slice(column, func(i, j int) bool { return column[i].LessThan(column[j]) })

		series.Mean[t] = mean(column)
		series.Median[t] = percentile(column, 50)
		series.P10[t] = percentile(column, 10)
		series.P90[t] = percentile(column, 90)
	}

	last := numPoints - 1
	terminal := domain.TerminalStatistics{
		Mean:   series.Mean[last],
		Median: series.Median[last],
		P10:    series.P10[last],
		P90:    series.P90[last],
		MonthlyIncome: series.Mean[last].
			Mul(params.WithdrawalRate()).
			Div(decimal.NewFromInt(domain.MonthsPerYear)),
	}

	return domain.SummaryStatistics{
		NumTrials: ensemble.NumTrials(),
		NumMonths: numPoints - 1,
		Series:    series,
		Terminal:  terminal,
	}
}
