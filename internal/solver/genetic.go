package solver

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"schedgen/internal/schedule"
)

// NewGeneticSolver builds the genetic search engine: tournament selection,
// uniform crossover, block mutation and a bounded elite archive, all driven
// by a single seedable randomness source. A nil logger disables the
// generation log.
func NewGeneticSolver(evaluator schedule.Evaluator, params schedule.Parameters, logger *zap.Logger) Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &geneticSolver{
		evaluator: evaluator,
		params:    params,
		logger:    logger,
		rng:       rand.New(rand.NewSource(params.Seed)),
		archive:   NewArchive(params.ArchiveSize),
	}
}

type geneticSolver struct {
	evaluator schedule.Evaluator
	params    schedule.Parameters
	logger    *zap.Logger
	rng       *rand.Rand
	archive   *EliteArchive
	history   []GenerationStats
}

// Run executes the fixed generation budget; there is no convergence-based
// early exit. Random draws happen in a fixed order: initial population bits,
// then per generation the tournament indices, the per-pair crossover coin
// followed by the per-bit swap coins, and the per-individual mutation coin
// followed by the per-chunk run length and zeroing coin.
func (s *geneticSolver) Run() (*Individual, error) {
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

		selections := max(s.params.PopulationSize-s.archive.Len(), 0)
		offspring := s.selectTournament(population, selections)
		crossovers := s.crossover(offspring)
		mutations := s.mutate(offspring)
		if err := s.evaluate(offspring); err != nil {
			return nil, err
		}

		combined := append(Population{}, offspring...)
		combined = append(combined, s.archive.Members()...)
		s.archive.Update(combined)
		population = offspring

		stats := GenerationStats{
			Generation: generation,
			BestCost:   s.archive.Best().Cost,
			EliteCosts: s.archive.Costs(),
			Crossovers: crossovers,
			Mutations:  mutations,
			Duration:   time.Since(start),
		}
		s.history = append(s.history, stats)
		s.logger.Info("generation completed",
			zap.Int("generation", stats.Generation),
			zap.Int("bestCost", stats.BestCost),
			zap.Ints("eliteCosts", stats.EliteCosts),
			zap.Int("crossovers", stats.Crossovers),
			zap.Int("mutations", stats.Mutations),
			zap.Duration("duration", stats.Duration),
		)
	}

	best := s.archive.Best()
	if best == nil {
		return nil, errors.New("search finished with an empty archive")
	}
	return best.Clone(), nil
}

func (s *geneticSolver) Report(w io.Writer) error {
	best := s.archive.Best()
	if best == nil {
		return errors.New("no individual to report on: run the solver first")
	}
	return reportBest(s.evaluator, best, w)
}

func (s *geneticSolver) History() []GenerationStats {
	return s.history
}

// evaluate computes the cost of every individual whose cache is unset.
// With more than one worker the evaluations run concurrently; results land
// at the same positions they were read from, so the outcome is identical to
// the sequential pass.
func (s *geneticSolver) evaluate(population Population) error {
	pending := lo.Filter(population, func(individual *Individual, _ int) bool {
		return !individual.Evaluated
	})

	if s.params.Workers <= 1 {
		for _, individual := range pending {
			cost, _, err := s.evaluator.Evaluate(individual.Bits)
			if err != nil {
				return err
			}
			individual.Cost = cost
			individual.Evaluated = true
		}
		return nil
	}

	workers := pool.New().WithMaxGoroutines(s.params.Workers)
	var mu sync.Mutex
	var firstErr error
	for _, individual := range pending {
		workers.Go(func() {
			cost, _, err := s.evaluator.Evaluate(individual.Bits)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			individual.Cost = cost
			individual.Evaluated = true
		})
	}
	workers.Wait()
	return firstErr
}

// selectTournament picks n offspring by repeated best-of-k sampling. Every
// pick is a fresh copy, so variation never touches the current population.
func (s *geneticSolver) selectTournament(population Population, n int) Population {
	chosen := make(Population, 0, n)
	for range n {
		best := population[s.rng.Intn(len(population))]
		for range s.params.TournamentSize - 1 {
			contender := population[s.rng.Intn(len(population))]
			if contender.Cost < best.Cost {
				best = contender
			}
		}
		chosen = append(chosen, best.Clone())
	}
	return chosen
}

// crossover mates consecutive pairs with uniform crossover and returns how
// many pairs were crossed.
func (s *geneticSolver) crossover(offspring Population) int {
	crossed := 0
	for i := 1; i < len(offspring); i += 2 {
		if s.rng.Float64() >= s.params.CrossoverProba {
			continue
		}
		first, second := offspring[i-1], offspring[i]
		for bit := range first.Bits {
			if s.rng.Float64() < s.params.CrossIndep {
				first.Bits[bit], second.Bits[bit] = second.Bits[bit], first.Bits[bit]
			}
		}
		first.Invalidate()
		second.Invalidate()
		crossed++
	}
	return crossed
}

// mutate applies block mutation independently per individual and returns how
// many individuals were mutated.
func (s *geneticSolver) mutate(offspring Population) int {
	mutated := 0
	for _, individual := range offspring {
		if s.rng.Float64() >= s.params.MutationProba {
			continue
		}
		zeroBlocks(s.evaluator.Problem(), s.rng, s.params.MutIndep, individual)
		mutated++
	}
	return mutated
}
