package simulation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// monthlyRates converts the annual expected return and volatility into their
// monthly equivalents: the compounding-equivalent mean (1+r)^(1/12)-1 and
// volatility scaled by 1/sqrt(12).
func monthlyRates(params domain.SimulationParameters) (mean, stdDev float64) {
	annualReturn, _ := params.AnnualReturn.Float64()
	annualVol, _ := params.AnnualVolatility.Float64()
	mean = math.Pow(1+annualReturn, 1.0/float64(domain.MonthsPerYear)) - 1
	stdDev = annualVol / math.Sqrt(float64(domain.MonthsPerYear))
	return mean, stdDev
}

// drawMonthlyReturns draws one normally distributed return per month from the
// injected source. When a crash regime is configured, any month can be
// replaced by the fixed crash return followed by a recovery window whose mean
// ramps back up to the normal monthly mean at 1.5x volatility. Months inside
// a recovery window are still exposed to new crashes.
func drawMonthlyReturns(params domain.SimulationParameters, rng *rand.Rand) []float64 {
	mean, stdDev := monthlyRates(params)
	returns := make([]float64, params.NumMonths())
	for i := range returns {
		returns[i] = mean + rng.NormFloat64()*stdDev
	}

	shocks := params.MarketShocks
	if shocks == nil || !shocks.Probability.IsPositive() {
		return returns
	}

	prob, _ := shocks.Probability.Float64()
	for i := range returns {
		if rng.Float64() >= prob {
			continue
		}
		applyCrash(returns, i, mean, stdDev, shocks, rng)
	}
	return returns
}

// applyCrash overwrites one month with the fixed crash return and ramps the
// following months back toward the monthly mean at 1.5x volatility. The ramp
// runs over the recovery window truncated to the remaining horizon, which is
// also its denominator.
func applyCrash(returns []float64, month int, mean, stdDev float64, shocks *domain.MarketShocks, rng *rand.Rand) {
	crash, _ := shocks.CrashReturn.Float64()
	returns[month] = crash
	recovery := shocks.RecoveryMonths
	if remaining := len(returns) - month; recovery > remaining {
		recovery = remaining
	}
	for j := 1; j < recovery; j++ {
		ramp := mean * float64(j) / float64(recovery)
		returns[month+j] = ramp + rng.NormFloat64()*stdDev*1.5
	}
}

// inflationFactor returns (1+rate)^(month/12), the factor applied to nominal
// cashflows so their purchasing power stays constant over the projection.
func inflationFactor(rate decimal.Decimal, month int) decimal.Decimal {
	if rate.IsZero() || month == 0 {
		return decimal.NewFromInt(1)
	}
	r, _ := rate.Float64()
	return decimal.NewFromFloat(math.Pow(1+r, float64(month)/float64(domain.MonthsPerYear)))
}

// GeneratePath produces one simulated portfolio trajectory from the given
// parameters and random source. Each trial must pass its own source; the
// generator never touches global random state.
//
// Cashflow convention: the month's inflation-adjusted cashflow (contribution
// before retirement age, withdrawal from retirement age on) is applied
// before the growth multiplier:
//
//	next = (balance + cashflow) * (1 + drawnReturn)
//
// A depleted pre-growth sum, or a balance that would go negative after
// growth, is clamped to zero; under withdrawals zero is absorbing
// (depletion is a valid outcome, not an error).
func GeneratePath(params domain.SimulationParameters, rng *rand.Rand) domain.Path {
	numMonths := params.NumMonths()
	values := make([]decimal.Decimal, numMonths+1)
	returns := make([]decimal.Decimal, numMonths)
	values[0] = params.InitialInvestment

	draws := drawMonthlyReturns(params, rng)
	retirementMonth := (params.RetirementAge - params.StartingAge) * domain.MonthsPerYear
	one := decimal.NewFromInt(1)

	balance := params.InitialInvestment
	for m := 0; m < numMonths; m++ {
		inflation := inflationFactor(params.InflationRate, m)
		var cashflow decimal.Decimal
		if m < retirementMonth {
			cashflow = params.MonthlyContribution.Mul(inflation)
		} else {
			cashflow = params.MonthlyWithdrawal.Mul(inflation).Neg()
		}

		growth := decimal.NewFromFloat(draws[m])
		// Clamp before growth as well: a depleted pre-growth sum must stay
		// at zero even when the drawn return is below -100%, where a
		// negative product would flip the balance positive.
		pre := balance.Add(cashflow)
		if pre.IsPositive() {
			balance = pre.Mul(one.Add(growth))
			if balance.IsNegative() {
				balance = decimal.Zero
			}
		} else {
			balance = decimal.Zero
		}

		returns[m] = growth
		values[m+1] = balance
	}

	return domain.Path{Values: values, Returns: returns}
}
