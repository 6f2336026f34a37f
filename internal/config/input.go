package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// DefaultNumTrials is used when a parameter file does not set a trial count.
const DefaultNumTrials = 100

// Input is the top-level structure of a simulation parameter file.
type Input struct {
	Parameters domain.SimulationParameters `yaml:"parameters"`
	Simulation RunSettings                 `yaml:"simulation"`
}

// RunSettings controls how the ensemble is executed.
type RunSettings struct {
	NumTrials int `yaml:"num_trials"`
	// Seed makes the run reproducible; zero selects a time-based seed.
	Seed int64 `yaml:"seed"`
}

// InputParser handles parsing of simulation parameter files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulation input from a YAML file, applies defaults and
// validates it.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&input)

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// applyDefaults fills in omitted run settings.
func (ip *InputParser) applyDefaults(input *Input) {
	if input.Simulation.NumTrials == 0 {
		input.Simulation.NumTrials = DefaultNumTrials
	}
}

// ValidateInput validates the loaded input.
func (ip *InputParser) ValidateInput(input *Input) error {
	if input.Simulation.NumTrials < 1 {
		return domain.NewParameterError("simulation.num_trials", "must be at least 1")
	}
	if err := input.Parameters.Validate(); err != nil {
		return err
	}
	return nil
}

// CreateExampleInput creates an example parameter set matching the
// simulator's stock scenario: a $1,500 monthly surplus invested from age 24
// until retirement at 65.
func (ip *InputParser) CreateExampleInput() *Input {
	return &Input{
		Parameters: domain.SimulationParameters{
			StartingAge:         24,
			RetirementAge:       65,
			HorizonAge:          65,
			InitialInvestment:   decimal.NewFromInt(50000),
			MonthlyContribution: decimal.NewFromInt(1500),
			MonthlyWithdrawal:   decimal.NewFromInt(3500),
			AnnualReturn:        decimal.NewFromFloat(0.07),
			AnnualVolatility:    decimal.NewFromFloat(0.15),
			InflationRate:       decimal.NewFromFloat(0.03),
		},
		Simulation: RunSettings{
			NumTrials: DefaultNumTrials,
		},
	}
}
