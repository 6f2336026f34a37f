package simulation

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// defaultMaxConcurrent bounds the number of trials simulated at once.
const defaultMaxConcurrent = 10

// Engine runs Monte Carlo portfolio simulations and aggregates the results.
type Engine struct {
	Logger        Logger
	MaxConcurrent int
}

// NewEngine creates an engine with default concurrency and a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}, MaxConcurrent: defaultMaxConcurrent}
}

// SetLogger sets the logger used by the engine.
func (e *Engine) SetLogger(l Logger) {
	if l != nil {
		e.Logger = l
	}
}

func (e *Engine) maxConcurrent() int {
	if e.MaxConcurrent > 0 {
		return e.MaxConcurrent
	}
	return defaultMaxConcurrent
}

// Run executes numTrials independent path simulations and reduces them into
// summary statistics. Each trial owns a private random source derived from
// (seed, trial index) and results are assembled by trial index, so a fixed
// seed yields bit-identical output regardless of scheduling. A zero seed is
// replaced by a time-based one and reported back in the result.
//
// Invalid parameters fail before any trial runs. Cancellation is honored at
// trial granularity: once ctx is done no further trials start and ctx.Err()
// is returned with no partial statistics.
func (e *Engine) Run(ctx context.Context, params domain.SimulationParameters, numTrials int, seed int64) (*domain.SimulationResult, error) {
	if numTrials < 1 {
		return nil, domain.NewParameterError("num_trials", "must be at least 1")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = seedFunc()
	}

	e.Logger.Debugf("simulating %d trials over %d months (seed %d)", numTrials, params.NumMonths(), seed)

	paths := make([]domain.Path, numTrials)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.maxConcurrent())

	var cancelled error
	for i := 0; i < numTrials; i++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rng := rand.New(rand.NewSource(trialSeed(seed, trial)))
			paths[trial] = GeneratePath(params, rng)
		}(i)
	}
	wg.Wait()

	if cancelled != nil {
		e.Logger.Warnf("simulation cancelled: %v", cancelled)
		return nil, cancelled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ensemble := domain.Ensemble{Paths: paths}
	summary := summarize(params, ensemble)

	return &domain.SimulationResult{
		Parameters: params,
		Seed:       seed,
		Summary:    summary,
		Ensemble:   ensemble,
	}, nil
}

// trialSeed derives an independent seed for one trial from the base seed.
// SplitMix64 mixing keeps the per-trial streams uncorrelated even though
// trial indexes are consecutive.
func trialSeed(base int64, trial int) int64 {
	z := uint64(base) + uint64(trial+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
