package solver

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"schedgen/internal/schedule"
)

func testEvaluator(t *testing.T) schedule.Evaluator {
	problem, err := schedule.NewProblem(schedule.ProblemConfig{
		SegmentLength:     8,
		ClassroomBits:     4,
		TeacherBits:       7,
		TypeBits:          7,
		TotalGroups:       3,
		Courses:           2,
		Directions:        2,
		GroupsPerLecture:  4,
		GroupsPerPractice: 2,
		ClassesPerDay:     2,
		DaysPerWeek:       2,
		WeeksPerGroup:     1,
	})
	assert.Nil(t, err)
	return schedule.NewEvaluator(problem, schedule.CostModel{HardPenalty: 10, SoftPenalty: 3})
}

func testParameters() schedule.Parameters {
	return schedule.Parameters{
		PopulationSize: 8,
		Generations:    4,
		TournamentSize: 3,
		ArchiveSize:    3,
		CrossoverProba: 0.9,
		CrossIndep:     0.1,
		MutationProba:  0.3,
		MutIndep:       0.2,
		Seed:           5,
	}
}

func TestCrossoverIndependenceProbabilities(t *testing.T) {
	evaluator := testEvaluator(t)

	t.Run("zero swap probability keeps children equal to parents", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.CrossoverProba = 1
		params.CrossIndep = 0
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		first := &Individual{Bits: []byte{0, 1, 0, 1, 1, 0}, Evaluated: true}
		second := &Individual{Bits: []byte{1, 1, 1, 0, 0, 0}, Evaluated: true}

		// Act
		crossed := engine.crossover(Population{first, second})

		// Assert
		assert.Equal(t, 1, crossed)
		assert.Equal(t, []byte{0, 1, 0, 1, 1, 0}, first.Bits)
		assert.Equal(t, []byte{1, 1, 1, 0, 0, 0}, second.Bits)
		assert.False(t, first.Evaluated)
		assert.False(t, second.Evaluated)
	})

	t.Run("certain swap probability exchanges the parents exactly", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.CrossoverProba = 1
		params.CrossIndep = 1
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		first := &Individual{Bits: []byte{0, 1, 0, 1, 1, 0}, Evaluated: true}
		second := &Individual{Bits: []byte{1, 1, 1, 0, 0, 0}, Evaluated: true}

		// Act
		crossed := engine.crossover(Population{first, second})

		// Assert
		assert.Equal(t, 1, crossed)
		assert.Equal(t, []byte{1, 1, 1, 0, 0, 0}, first.Bits)
		assert.Equal(t, []byte{0, 1, 0, 1, 1, 0}, second.Bits)
	})

	t.Run("zero crossover probability leaves the pair untouched", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.CrossoverProba = 0
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		first := &Individual{Bits: []byte{0, 1}, Evaluated: true}
		second := &Individual{Bits: []byte{1, 0}, Evaluated: true}

		// Act
		crossed := engine.crossover(Population{first, second})

		// Assert
		assert.Equal(t, 0, crossed)
		assert.True(t, first.Evaluated)
		assert.True(t, second.Evaluated)
	})
}

func TestCrossoverPreservesBitTotals(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	params := testParameters()
	params.CrossoverProba = 1
	params.CrossIndep = 0.5
	engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)

	first := &Individual{Bits: evaluator.Problem().RandomBits(engine.rng)}
	second := &Individual{Bits: evaluator.Problem().RandomBits(engine.rng)}
	countOnes := func(bits []byte) int {
		ones := 0
		for _, bit := range bits {
			ones += int(bit)
		}
		return ones
	}
	totalOnes := countOnes(first.Bits) + countOnes(second.Bits)
	length := len(first.Bits)

	// Act
	engine.crossover(Population{first, second})

	// Assert
	assert.Len(t, first.Bits, length)
	assert.Len(t, second.Bits, length)
	assert.Equal(t, totalOnes, countOnes(first.Bits)+countOnes(second.Bits))
}

func TestMutation(t *testing.T) {
	evaluator := testEvaluator(t)

	t.Run("zero block probability leaves bits unchanged", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.MutationProba = 1
		params.MutIndep = 0
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		individual := &Individual{Bits: evaluator.Problem().RandomBits(engine.rng), Evaluated: true}
		original := slices.Clone(individual.Bits)

		// Act
		mutated := engine.mutate(Population{individual})

		// Assert
		assert.Equal(t, 1, mutated)
		assert.Equal(t, original, individual.Bits)
		assert.False(t, individual.Evaluated)
	})

	t.Run("mutation only zeroes bits and preserves length", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.MutationProba = 1
		params.MutIndep = 1
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		individual := &Individual{Bits: evaluator.Problem().RandomBits(engine.rng), Evaluated: true}
		original := slices.Clone(individual.Bits)

		// Act
		engine.mutate(Population{individual})

		// Assert
		assert.Len(t, individual.Bits, len(original))
		for i, bit := range individual.Bits {
			assert.True(t, bit == 0 || bit == original[i])
		}
	})

	t.Run("zero mutation probability mutates nobody", func(t *testing.T) {
		// Arrange
		params := testParameters()
		params.MutationProba = 0
		engine := NewGeneticSolver(evaluator, params, nil).(*geneticSolver)
		individual := &Individual{Bits: evaluator.Problem().RandomBits(engine.rng), Evaluated: true}

		// Act
		mutated := engine.mutate(Population{individual})

		// Assert
		assert.Equal(t, 0, mutated)
		assert.True(t, individual.Evaluated)
	})
}

func TestSelectTournament(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	engine := NewGeneticSolver(evaluator, testParameters(), nil).(*geneticSolver)
	population := Population{
		{Bits: []byte{0}, Cost: 5, Evaluated: true},
		{Bits: []byte{0}, Cost: 1, Evaluated: true},
		{Bits: []byte{0}, Cost: 9, Evaluated: true},
		{Bits: []byte{0}, Cost: 3, Evaluated: true},
	}

	// Act
	chosen := engine.selectTournament(population, 20)

	// Assert: every pick carries a cost from the population, and picks are
	// independent copies.
	assert.Len(t, chosen, 20)
	for _, pick := range chosen {
		assert.Contains(t, []int{1, 3, 5, 9}, pick.Cost)
	}
	chosen[0].Bits[0] = 1
	for _, original := range population {
		assert.Equal(t, byte(0), original.Bits[0])
	}
}

func TestSelectTournamentSingleMember(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	engine := NewGeneticSolver(evaluator, testParameters(), nil).(*geneticSolver)
	population := Population{{Bits: []byte{0}, Cost: 7, Evaluated: true}}

	// Act
	chosen := engine.selectTournament(population, 3)

	// Assert
	assert.Len(t, chosen, 3)
	for _, pick := range chosen {
		assert.Equal(t, 7, pick.Cost)
	}
}

func TestGeneticRun(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	engine := NewGeneticSolver(evaluator, testParameters(), nil)

	// Act
	best, err := engine.Run()

	// Assert
	assert.Nil(t, err)
	assert.NotNil(t, best)
	assert.True(t, best.Evaluated)
	assert.GreaterOrEqual(t, best.Cost, 0)

	history := engine.History()
	assert.Len(t, history, testParameters().Generations)
	for i, stats := range history {
		assert.Equal(t, i+1, stats.Generation)
		assert.LessOrEqual(t, len(stats.EliteCosts), testParameters().ArchiveSize)
		assert.True(t, slices.IsSorted(stats.EliteCosts))
		if i > 0 {
			assert.LessOrEqual(t, stats.BestCost, history[i-1].BestCost)
		}
	}
	assert.Equal(t, history[len(history)-1].BestCost, best.Cost)
}

func TestGeneticRunIsReproducible(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)

	// Act
	first, err1 := NewGeneticSolver(evaluator, testParameters(), nil).Run()
	second, err2 := NewGeneticSolver(evaluator, testParameters(), nil).Run()

	// Assert
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first.Cost, second.Cost)
	assert.Equal(t, first.Bits, second.Bits)
}

func TestGeneticRunParallelEvaluationMatchesSequential(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	parallel := testParameters()
	parallel.Workers = 4

	// Act
	sequential, err1 := NewGeneticSolver(evaluator, testParameters(), nil).Run()
	concurrent, err2 := NewGeneticSolver(evaluator, parallel, nil).Run()

	// Assert: evaluation draws no randomness, so dispatching it across
	// workers must not change the outcome.
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, sequential.Cost, concurrent.Cost)
	assert.Equal(t, sequential.Bits, concurrent.Bits)
}

func TestGeneticReport(t *testing.T) {
	// Arrange
	evaluator := testEvaluator(t)
	engine := NewGeneticSolver(evaluator, testParameters(), nil)

	// Act
	var before bytes.Buffer
	beforeErr := engine.Report(&before)
	_, err := engine.Run()
	assert.Nil(t, err)
	var after bytes.Buffer
	afterErr := engine.Report(&after)

	// Assert
	assert.NotNil(t, beforeErr)
	assert.Nil(t, afterErr)
	assert.Contains(t, after.String(), "Best individual cost:")
	assert.Contains(t, after.String(), "Hard constraint violations:")
	assert.Contains(t, after.String(), "Soft constraint violations:")
}
