package domain

import (
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the timeline resolution of the simulator.
const MonthsPerYear = 12

// DefaultSafeWithdrawalRate is the annual withdrawal rate used to derive
// expected monthly retirement income when the caller does not set one.
var DefaultSafeWithdrawalRate = decimal.NewFromFloat(0.04)

// MarketShocks configures the optional crash regime layered on top of the
// normal monthly return draws. A zero Probability disables it.
type MarketShocks struct {
	Probability    decimal.Decimal `yaml:"probability" json:"probability"`         // per-month crash chance
	CrashReturn    decimal.Decimal `yaml:"crash_return" json:"crash_return"`       // e.g. -0.20
	RecoveryMonths int             `yaml:"recovery_months" json:"recovery_months"` // ramp-back window after a crash
}

// SimulationParameters is the full input to one simulation request.
// All currency fields are nominal amounts at the starting age; rates are
// annual fractions (0.07 = 7%).
type SimulationParameters struct {
	StartingAge   int `yaml:"starting_age" json:"starting_age"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age"`
	// HorizonAge is the age at which the projection ends. It defaults to
	// RetirementAge (accumulation-only projection) when zero.
	HorizonAge int `yaml:"horizon_age" json:"horizon_age"`

	InitialInvestment   decimal.Decimal `yaml:"initial_investment" json:"initial_investment"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	MonthlyWithdrawal   decimal.Decimal `yaml:"monthly_withdrawal" json:"monthly_withdrawal"`

	AnnualReturn     decimal.Decimal `yaml:"annual_return" json:"annual_return"`
	AnnualVolatility decimal.Decimal `yaml:"annual_volatility" json:"annual_volatility"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`

	// SafeWithdrawalRate is the annual rate applied to the terminal mean
	// balance to report expected monthly retirement income. Defaults to 4%.
	SafeWithdrawalRate decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safe_withdrawal_rate"`

	MarketShocks *MarketShocks `yaml:"market_shocks,omitempty" json:"market_shocks,omitempty"`
}

// Horizon returns the effective end age of the projection.
func (p SimulationParameters) Horizon() int {
	if p.HorizonAge > p.RetirementAge {
		return p.HorizonAge
	}
	return p.RetirementAge
}

// NumMonths returns the number of simulated months (path length minus the
// initial-balance entry).
func (p SimulationParameters) NumMonths() int {
	return (p.Horizon() - p.StartingAge) * MonthsPerYear
}

// WithdrawalRate returns the configured safe withdrawal rate or the default.
func (p SimulationParameters) WithdrawalRate() decimal.Decimal {
	if p.SafeWithdrawalRate.IsPositive() {
		return p.SafeWithdrawalRate
	}
	return DefaultSafeWithdrawalRate
}

// Validate checks every parameter invariant. It returns a *ParameterError
// naming the offending field so callers can correct input; no simulation may
// run on parameters that fail here.
func (p SimulationParameters) Validate() error {
	if p.StartingAge < 0 {
		return NewParameterError("starting_age", "must be non-negative")
	}
	if p.RetirementAge <= p.StartingAge {
		return NewParameterError("retirement_age", "must be greater than starting age")
	}
	if p.HorizonAge != 0 && p.HorizonAge < p.RetirementAge {
		return NewParameterError("horizon_age", "must be at or after retirement age")
	}
	if p.InitialInvestment.IsNegative() {
		return NewParameterError("initial_investment", "cannot be negative")
	}
	if p.MonthlyContribution.IsNegative() {
		return NewParameterError("monthly_contribution", "cannot be negative")
	}
	if p.MonthlyWithdrawal.IsNegative() {
		return NewParameterError("monthly_withdrawal", "cannot be negative")
	}
	if p.AnnualVolatility.IsNegative() {
		return NewParameterError("annual_volatility", "cannot be negative")
	}
	if p.AnnualReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewParameterError("annual_return", "cannot be -100% or lower")
	}
	if p.InflationRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewParameterError("inflation_rate", "cannot be -100% or lower")
	}
	if !p.SafeWithdrawalRate.IsZero() {
		if p.SafeWithdrawalRate.IsNegative() || p.SafeWithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
			return NewParameterError("safe_withdrawal_rate", "must be between 0 and 1")
		}
	}
	if s := p.MarketShocks; s != nil {
		if s.Probability.IsNegative() || s.Probability.GreaterThan(decimal.NewFromInt(1)) {
			return NewParameterError("market_shocks.probability", "must be between 0 and 1")
		}
		if s.CrashReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return NewParameterError("market_shocks.crash_return", "cannot be -100% or lower")
		}
		if s.RecoveryMonths < 0 {
			return NewParameterError("market_shocks.recovery_months", "cannot be negative")
		}
	}
	return nil
}

// Path is one trial's month-by-month portfolio trajectory. Values[0] is the
// initial investment; Returns[i] is the monthly return applied to reach
// Values[i+1]. A Path is immutable once produced.
type Path struct {
	Values  []decimal.Decimal `json:"values"`
	Returns []decimal.Decimal `json:"returns"`
}

// Terminal returns the final balance of the path.
func (p Path) Terminal() decimal.Decimal {
	return p.Values[len(p.Values)-1]
}

// Ensemble is the collection of independent trial paths produced for one
// simulation request.
type Ensemble struct {
	Paths []Path `json:"paths"`
}

// NumTrials returns the number of paths in the ensemble.
func (e Ensemble) NumTrials() int { return len(e.Paths) }

// SummarySeries holds the per-month cross-sectional reductions across all
// trials; all slices share the path length.
type SummarySeries struct {
	Mean   []decimal.Decimal `json:"mean"`
	Median []decimal.Decimal `json:"median"`
	P10    []decimal.Decimal `json:"p10"`
	P90    []decimal.Decimal `json:"p90"`
}

// TerminalStatistics are the reductions over the final month plus the
// derived income figure.
type TerminalStatistics struct {
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	P10    decimal.Decimal `json:"p10"`
	P90    decimal.Decimal `json:"p90"`
	// MonthlyIncome is terminal mean balance x safe withdrawal rate / 12.
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
}

// SummaryStatistics is the aggregate view of an ensemble, computed once and
// immutable thereafter.
type SummaryStatistics struct {
	NumTrials int                `json:"num_trials"`
	NumMonths int                `json:"num_months"`
	Series    SummarySeries      `json:"series"`
	Terminal  TerminalStatistics `json:"terminal"`
}

// SimulationResult bundles the summary with the raw ensemble for callers
// that plot individual paths.
type SimulationResult struct {
	Parameters SimulationParameters `json:"parameters"`
	Seed       int64                `json:"seed"`
	Summary    SummaryStatistics    `json:"summary"`
	Ensemble   Ensemble             `json:"ensemble"`
}
