package output

import (
	"encoding/json"

	"github.com/rpsim/portfolio-simulator/internal/domain"
)

// JSONFormatter serializes the simulation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
