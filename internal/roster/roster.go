// Package roster builds the scored list of people a run partitions into teams.
package roster

import (
	"math"

	"github.com/pkg/errors"
)

// Person is a named participant with a single skill score. The score is NaN when every
// observation for the person was missing or masked.
type Person struct {
	Name  string
	Score float64
}

// Roster is the ordered, read-only list of people of a run. A person's position is its
// identity within the search.
type Roster struct {
	people []Person
}

// New validates people and builds a roster in the given order.
func New(people []Person) (*Roster, error) {
	if len(people) == 0 {
		return nil, ErrNoPeople
	}

	seen := make(map[string]struct{}, len(people))

	for i, p := range people {
		if p.Name == "" {
			return nil, errors.Wrapf(ErrEmptyName, "position %d", i)
		}

		if _, ok := seen[p.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicatePerson, "%q", p.Name)
		}

		seen[p.Name] = struct{}{}
	}

	cp := make([]Person, len(people))
	copy(cp, people)

	return &Roster{people: cp}, nil
}

// Len returns the number of people.
func (r *Roster) Len() int { return len(r.people) }

// Person returns the person at position i.
func (r *Roster) Person(i int) Person { return r.people[i] }

// People returns a copy of the people in roster order.
func (r *Roster) People() []Person {
	cp := make([]Person, len(r.people))
	copy(cp, r.people)

	return cp
}

// Undefined returns the names of the people whose score is NaN.
func (r *Roster) Undefined() []string {
	var res []string

	for _, p := range r.people {
		if math.IsNaN(p.Score) {
			res = append(res, p.Name)
		}
	}

	return res
}
