package simulation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// DefaultTrailingWindow is the standard lookback for trailing return
// analytics (two years of monthly returns).
const DefaultTrailingWindow = 24

// TrailingAnnualizedReturns computes, for each month of a path's return
// series, the annualized compound return over the preceding window months:
//
//	(1+r_1)*...*(1+r_w) raised to 12/w, minus 1
//
// Months without a full window of history yield nil entries.
func TrailingAnnualizedReturns(returns []decimal.Decimal, window int) ([]*decimal.Decimal, error) {
	if window < 1 {
		return nil, domain.NewParameterError("window", "must be at least 1")
	}

	out := make([]*decimal.Decimal, len(returns))
	for i := range returns {
		if i < window {
			continue
		}
		compound := 1.0
		for _, r := range returns[i-window : i] {
			f, _ := r.Float64()
			compound *= 1 + f
		}
		if compound <= 0 {
			// a draw at or below -100% makes the compound undefined
			continue
		}
		annualized := math.Pow(compound, float64(domain.MonthsPerYear)/float64(window)) - 1
		d := decimal.NewFromFloat(annualized)
		out[i] = &d
	}
	return out, nil
}
