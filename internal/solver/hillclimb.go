package solver

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"schedgen/internal/schedule"
)

// Fraction of the population replaced with fresh random individuals each
// generation to escape local optima.
const hillClimbInjectionRate = 0.05

// NewHillClimbSolver builds a population hill climber over the same problem,
// evaluator and individual representation as the genetic engine. Every
// generation each candidate is cloned, block-mutated and replaced only when
// the clone scores better; the worst candidates are swapped for random ones.
func NewHillClimbSolver(evaluator schedule.Evaluator, params schedule.Parameters, logger *zap.Logger) Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &hillClimbSolver{
		evaluator: evaluator,
		params:    params,
		logger:    logger,
		rng:       rand.New(rand.NewSource(params.Seed)),
		archive:   NewArchive(params.ArchiveSize),
	}
}

type hillClimbSolver struct {
	evaluator schedule.Evaluator
	params    schedule.Parameters
	logger    *zap.Logger
	rng       *rand.Rand
	archive   *EliteArchive
	history   []GenerationStats
}

func (s *hillClimbSolver) Run() (*Individual, error) {
	problem := s.evaluator.Problem()

	population := make(Population, s.params.PopulationSize)
	for i := range population {
		population[i] = &Individual{Bits: problem.RandomBits(s.rng)}
	}
	if err := s.evaluate(population); err != nil {
		return nil, err
	}
	s.archive.Update(population)

	for generation := 1; generation <= s.params.Generations; generation++ {
		start := time.Now()

		mutations := 0
		for i, parent := range population {
			child := parent.Clone()
			zeroBlocks(problem, s.rng, s.params.MutIndep, child)
			cost, _, err := s.evaluator.Evaluate(child.Bits)
			if err != nil {
				return nil, err
			}
			child.Cost = cost
			child.Evaluated = true
			if child.Cost < parent.Cost {
				population[i] = child
				mutations++
			}
		}

		injected := s.injectRandom(population)
		if err := s.evaluate(population); err != nil {
			return nil, err
		}
		s.archive.Update(population)

		stats := GenerationStats{
			Generation: generation,
			BestCost:   s.archive.Best().Cost,
			EliteCosts: s.archive.Costs(),
			Mutations:  mutations,
			Duration:   time.Since(start),
		}
		s.history = append(s.history, stats)
		s.logger.Info("generation completed",
			zap.Int("generation", stats.Generation),
			zap.Int("bestCost", stats.BestCost),
			zap.Ints("eliteCosts", stats.EliteCosts),
			zap.Int("mutations", stats.Mutations),
			zap.Int("injected", injected),
			zap.Duration("duration", stats.Duration),
		)
	}

	best := s.archive.Best()
	if best == nil {
		return nil, errors.New("search finished with an empty archive")
	}
	return best.Clone(), nil
}

func (s *hillClimbSolver) Report(w io.Writer) error {
	best := s.archive.Best()
	if best == nil {
		return errors.New("no individual to report on: run the solver first")
	}
	return reportBest(s.evaluator, best, w)
}

func (s *hillClimbSolver) History() []GenerationStats {
	return s.history
}

// injectRandom replaces the worst candidates with fresh random individuals
// and returns how many were replaced.
func (s *hillClimbSolver) injectRandom(population Population) int {
	injections := int(float64(len(population)) * hillClimbInjectionRate)
	if injections == 0 {
		return 0
	}

	population.SortByCost()
	problem := s.evaluator.Problem()
	for i := len(population) - injections; i < len(population); i++ {
		population[i] = &Individual{Bits: problem.RandomBits(s.rng)}
	}
	return injections
}

func (s *hillClimbSolver) evaluate(population Population) error {
	for _, individual := range population {
		if individual.Evaluated {
			continue
		}
		cost, _, err := s.evaluator.Evaluate(individual.Bits)
		if err != nil {
			return err
		}
		individual.Cost = cost
		individual.Evaluated = true
	}
	return nil
}
