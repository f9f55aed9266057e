package schedule

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Parameters drive a search run. Workers bounds concurrent cost evaluations;
// zero or one keeps evaluation sequential.
type Parameters struct {
	PopulationSize int     `mapstructure:"populationSize"`
	Generations    int     `mapstructure:"generations"`
	TournamentSize int     `mapstructure:"tournamentSize"`
	ArchiveSize    int     `mapstructure:"archiveSize"`
	CrossoverProba float64 `mapstructure:"crossoverProba"`
	CrossIndep     float64 `mapstructure:"crossIndepProba"`
	MutationProba  float64 `mapstructure:"mutationProba"`
	MutIndep       float64 `mapstructure:"mutIndepProba"`
	Seed           int64   `mapstructure:"seed"`
	Workers        int     `mapstructure:"workers"`
}

// RunConfig is the full content of a run configuration file: the problem,
// the cost model and the search parameters.
type RunConfig struct {
	Problem    ProblemConfig `mapstructure:"problem"`
	Cost       CostModel     `mapstructure:"cost"`
	Parameters Parameters    `mapstructure:"parameters"`
}

func ConfigFromJSON(file string) (RunConfig, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return RunConfig{}, err
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return RunConfig{}, err
	}

	var config RunConfig
	if err := mapstructure.Decode(configJson, &config); err != nil {
		return RunConfig{}, err
	}
	return config, nil
}
