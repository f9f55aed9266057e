package solver

import "slices"

// Individual is one candidate timetable: a fixed-length bit string plus a
// cached cost. The cost is meaningless until Evaluated is set; variation
// operators clear it.
type Individual struct {
	Bits      []byte
	Cost      int
	Evaluated bool
}

func (individual *Individual) Clone() *Individual {
	bits := make([]byte, len(individual.Bits))
	copy(bits, individual.Bits)
	return &Individual{
		Bits:      bits,
		Cost:      individual.Cost,
		Evaluated: individual.Evaluated,
	}
}

// Invalidate drops the cached cost after the bits have changed.
func (individual *Individual) Invalidate() {
	individual.Cost = 0
	individual.Evaluated = false
}

// Population is an ordered collection of individuals. Duplicates are allowed
// and positions carry no meaning beyond insertion order.
type Population []*Individual

// SortByCost orders the population ascending by cost, keeping the relative
// order of equal-cost individuals.
func (population Population) SortByCost() {
	slices.SortStableFunc(population, func(a, b *Individual) int {
		return a.Cost - b.Cost
	})
}
