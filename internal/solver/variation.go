package solver

import (
	"fmt"
	"io"
	"math/rand"

	"schedgen/internal/schedule"
)

// zeroBlocks is the block mutation both engines share: the bit string is cut
// into chunks of one day's segments, and each chunk independently gets a
// contiguous run of zeros starting at its boundary. The run spans the segment
// length times half a random class count, rounded down; the run length is
// drawn before the chunk's coin so the draw order stays fixed.
func zeroBlocks(problem *schedule.Problem, rng *rand.Rand, indepProba float64, individual *Individual) {
	chunk := problem.SegmentLength * problem.ClassesPerDay

	for start := 0; start < len(individual.Bits); start += chunk {
		run := problem.SegmentLength * (rng.Intn(problem.ClassesPerDay+1) / 2)
		if rng.Float64() >= indepProba {
			continue
		}
		end := min(start+run, len(individual.Bits))
		for bit := start; bit < end; bit++ {
			individual.Bits[bit] = 0
		}
	}
	individual.Invalidate()
}

// reportBest re-evaluates the best individual and writes its cost followed by
// the fixed-order violation report.
func reportBest(evaluator schedule.Evaluator, best *Individual, w io.Writer) error {
	cost, tally, err := evaluator.Evaluate(best.Bits)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best individual cost: %v\n", cost); err != nil {
		return err
	}
	return tally.Report(w)
}
