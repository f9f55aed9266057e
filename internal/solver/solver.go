package solver

import (
	"io"
	"time"
)

// Solver searches for a low-cost timetable over a fixed generation budget.
// Implementations share the Individual/cost representation and the evaluator
// contract, so engines are interchangeable from the drivers' point of view.
type Solver interface {
	// Runs the full generation budget and returns the best individual found.
	Run() (*Individual, error)
	// Writes the best cost and the violation report of the best individual.
	Report(w io.Writer) error
	// Returns the per-generation records of the last run.
	History() []GenerationStats
}

// GenerationStats is one generation's log record.
type GenerationStats struct {
	Generation int
	BestCost   int
	EliteCosts []int
	Crossovers int
	Mutations  int
	Duration   time.Duration
}
