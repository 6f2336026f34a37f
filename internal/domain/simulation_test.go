package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SimulationParameters {
	return SimulationParameters{
		StartingAge:         30,
		RetirementAge:       65,
		HorizonAge:          90,
		InitialInvestment:   decimal.NewFromInt(50000),
		MonthlyContribution: decimal.NewFromInt(1500),
		MonthlyWithdrawal:   decimal.NewFromInt(3500),
		AnnualReturn:        decimal.NewFromFloat(0.07),
		AnnualVolatility:    decimal.NewFromFloat(0.15),
		InflationRate:       decimal.NewFromFloat(0.03),
	}
}

func TestSimulationParametersValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())
}

func TestSimulationParametersValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SimulationParameters)
		field  string
	}{
		{"negative starting age", func(p *SimulationParameters) { p.StartingAge = -1 }, "starting_age"},
		{"retirement equals start", func(p *SimulationParameters) { p.RetirementAge = p.StartingAge }, "retirement_age"},
		{"retirement before start", func(p *SimulationParameters) { p.RetirementAge = p.StartingAge - 5 }, "retirement_age"},
		{"horizon before retirement", func(p *SimulationParameters) { p.HorizonAge = p.RetirementAge - 1 }, "horizon_age"},
		{"negative initial investment", func(p *SimulationParameters) { p.InitialInvestment = decimal.NewFromInt(-1) }, "initial_investment"},
		{"negative contribution", func(p *SimulationParameters) { p.MonthlyContribution = decimal.NewFromInt(-1) }, "monthly_contribution"},
		{"negative withdrawal", func(p *SimulationParameters) { p.MonthlyWithdrawal = decimal.NewFromInt(-1) }, "monthly_withdrawal"},
		{"negative volatility", func(p *SimulationParameters) { p.AnnualVolatility = decimal.NewFromFloat(-0.01) }, "annual_volatility"},
		{"return below -100%", func(p *SimulationParameters) { p.AnnualReturn = decimal.NewFromInt(-1) }, "annual_return"},
		{"inflation below -100%", func(p *SimulationParameters) { p.InflationRate = decimal.NewFromFloat(-1.5) }, "inflation_rate"},
		{"withdrawal rate above 1", func(p *SimulationParameters) { p.SafeWithdrawalRate = decimal.NewFromInt(2) }, "safe_withdrawal_rate"},
		{"negative withdrawal rate", func(p *SimulationParameters) { p.SafeWithdrawalRate = decimal.NewFromFloat(-0.04) }, "safe_withdrawal_rate"},
		{"shock probability above 1", func(p *SimulationParameters) {
			p.MarketShocks = &MarketShocks{Probability: decimal.NewFromInt(2)}
		}, "market_shocks.probability"},
		{"crash return below -100%", func(p *SimulationParameters) {
			p.MarketShocks = &MarketShocks{Probability: decimal.NewFromFloat(0.02), CrashReturn: decimal.NewFromInt(-1)}
		}, "market_shocks.crash_return"},
		{"negative recovery months", func(p *SimulationParameters) {
			p.MarketShocks = &MarketShocks{Probability: decimal.NewFromFloat(0.02), CrashReturn: decimal.NewFromFloat(-0.2), RecoveryMonths: -1}
		}, "market_shocks.recovery_months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.modify(&params)

			err := params.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)

			var perr *ParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
			assert.NotEmpty(t, perr.Constraint)
		})
	}
}

func TestSimulationParametersNegativeReturnAllowed(t *testing.T) {
	params := validParams()
	params.AnnualReturn = decimal.NewFromFloat(-0.02)
	assert.NoError(t, params.Validate())
}

func TestSimulationParametersHorizon(t *testing.T) {
	params := validParams()
	assert.Equal(t, 90, params.Horizon())
	assert.Equal(t, (90-30)*12, params.NumMonths())

	params.HorizonAge = 0
	assert.Equal(t, 65, params.Horizon(), "horizon defaults to retirement age")
	assert.Equal(t, (65-30)*12, params.NumMonths())
}

func TestSimulationParametersWithdrawalRate(t *testing.T) {
	params := validParams()
	assert.True(t, params.WithdrawalRate().Equal(decimal.NewFromFloat(0.04)), "defaults to 4%%")

	params.SafeWithdrawalRate = decimal.NewFromFloat(0.035)
	assert.True(t, params.WithdrawalRate().Equal(decimal.NewFromFloat(0.035)))
}

func TestPathTerminal(t *testing.T) {
	path := Path{Values: []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(7)}}
	assert.True(t, path.Terminal().Equal(decimal.NewFromInt(7)))
}

func TestDecimalFromFloat(t *testing.T) {
	d, err := DecimalFromFloat("annual_return", 0.07)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromFloat(0.07)))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := DecimalFromFloat("annual_return", v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNonFinite)
		assert.ErrorIs(t, err, ErrInvalidParameter)
		assert.Contains(t, err.Error(), "annual_return")
	}
}

func TestParameterErrorMessage(t *testing.T) {
	err := NewParameterError("retirement_age", "must be greater than starting age")
	assert.Equal(t, "invalid parameter retirement_age: must be greater than starting age", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
