// Package team enumerates the candidate teams of a roster and keeps the mean score of each.
package team

import (
	"github.com/askiada/go-teambalance/internal/roster"
)

// Team is a set of roster positions.
type Team struct {
	// Ordinal is the rank of the team in enumeration order.
	Ordinal int
	// Members holds roster positions in ascending order.
	Members []int
	// Mask has bit i set when roster position i is a member.
	Mask uint64
	Key  Key
}

// New builds the team made of the given roster positions, which must be ascending.
func New(rst *roster.Roster, ordinal int, members []int) *Team {
	names := make([]string, len(members))
	mask := uint64(0)

	for i, pos := range members {
		names[i] = rst.Person(pos).Name
		mask |= 1 << uint(pos)
	}

	cp := make([]int, len(members))
	copy(cp, members)

	return &Team{
		Ordinal: ordinal,
		Members: cp,
		Mask:    mask,
		Key:     KeyOf(names...),
	}
}

// Names returns the member names in roster order.
func (t *Team) Names(rst *roster.Roster) []string {
	res := make([]string, len(t.Members))
	for i, pos := range t.Members {
		res[i] = rst.Person(pos).Name
	}

	return res
}

// Scores returns the member scores in roster order.
func (t *Team) Scores(rst *roster.Roster) []float64 {
	res := make([]float64, len(t.Members))
	for i, pos := range t.Members {
		res[i] = rst.Person(pos).Score
	}

	return res
}

// Mean returns the arithmetic mean of the member scores.
func (t *Team) Mean(rst *roster.Roster) float64 {
	sum := 0.0
	for _, pos := range t.Members {
		sum += rst.Person(pos).Score
	}

	return sum / float64(len(t.Members))
}
