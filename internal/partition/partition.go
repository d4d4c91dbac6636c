// Package partition searches the combinations of accepted teams for the partition of the
// roster whose team means are the most even.
package partition

import (
	"math/big"
	"slices"

	"github.com/askiada/go-teambalance/internal/team"
)

// DefaultSentinel is the objective score reported when no valid partition exists.
const DefaultSentinel = 10.0

// Partition is a set of pairwise disjoint teams covering the whole roster.
type Partition struct {
	Teams []*team.Team
	Means []float64
	// Indices are the positions of Teams in the searched slice, ascending.
	Indices        []int
	ObjectiveScore float64
}

// Result is the outcome of a search.
type Result struct {
	// Found is false when no valid partition scored below the sentinel.
	Found bool
	// Best is nil when Found is false.
	Best *Partition
	// ObjectiveScore is the sentinel when Found is false.
	ObjectiveScore float64
	// SearchSpace is the number of team combinations the search covers, C(teams, groups).
	SearchSpace *big.Int
	// Valid counts the partitions that were scored.
	Valid int64
	// Pruned counts the prefixes abandoned because two teams share a person.
	Pruned int64
}

// Teams returns the teams of the best partition, or nil.
func (r *Result) Teams() []*team.Team {
	if r.Best == nil {
		return nil
	}

	return r.Best.Teams
}

type scored struct {
	indices []int
	score   float64
}

// better orders candidates by score, then by the enumeration order of their indices.
func (s *scored) better(o *scored) bool {
	if o == nil {
		return true
	}

	if s.score != o.score {
		return s.score < o.score
	}

	return slices.Compare(s.indices, o.indices) < 0
}
