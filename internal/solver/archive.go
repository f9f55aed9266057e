package solver

import "slices"

// EliteArchive is the bounded, cost-sorted set of the best individuals found
// so far. A candidate whose cost equals that of a member it meets during the
// insert scan is dropped rather than duplicated; this keeps the archive free
// of cost ties at the price of some diversity, a deliberate trade-off of the
// elitism scheme.
type EliteArchive struct {
	capacity int
	members  Population
}

func NewArchive(capacity int) *EliteArchive {
	return &EliteArchive{capacity: capacity}
}

// Update merges a candidate population into the archive. An empty archive is
// seeded with the best candidates directly; otherwise every candidate runs an
// insert scan that places it before the first member with a strictly greater
// cost, or drops it on the first cost tie. The worst member is evicted
// whenever an insertion pushes the archive over capacity.
func (archive *EliteArchive) Update(population Population) {
	candidates := slices.Clone(population)
	candidates.SortByCost()

	if len(archive.members) == 0 {
		seeded := min(archive.capacity, len(candidates))
		for _, candidate := range candidates[:seeded] {
			archive.members = append(archive.members, candidate.Clone())
		}
		return
	}

	for _, candidate := range candidates {
		archive.insert(candidate)
	}
}

func (archive *EliteArchive) insert(candidate *Individual) {
	for i, member := range archive.members {
		if member.Cost == candidate.Cost {
			return
		}
		if member.Cost > candidate.Cost {
			archive.members = slices.Insert(archive.members, i, candidate.Clone())
			if len(archive.members) > archive.capacity {
				archive.members = archive.members[:archive.capacity]
			}
			return
		}
	}
}

func (archive *EliteArchive) Len() int {
	return len(archive.members)
}

// Best returns the lowest-cost member, or nil for an empty archive.
func (archive *EliteArchive) Best() *Individual {
	if len(archive.members) == 0 {
		return nil
	}
	return archive.members[0]
}

// Members returns the archive content in ascending cost order. The slice is
// fresh but shares the underlying individuals.
func (archive *EliteArchive) Members() Population {
	return slices.Clone(archive.members)
}

// Costs lists the member costs in ascending order.
func (archive *EliteArchive) Costs() []int {
	costs := make([]int, len(archive.members))
	for i, member := range archive.members {
		costs[i] = member.Cost
	}
	return costs
}
