package team

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"github.com/askiada/go-teambalance/internal/combin"
	"github.com/askiada/go-teambalance/internal/roster"
	"github.com/askiada/go-teambalance/pkg/pipeline"
	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

// MaxRosterSize is the largest roster a team mask can represent.
const MaxRosterSize = 64

// Enumerator lists every team of Size people and keeps those whose mean lies in Band.
type Enumerator struct {
	Size    int
	Band    Band
	Cache   *MeanCache
	Workers int
	// Options are attached to the enumeration pipeline.
	Options []model.PipelineOption
}

// Enumeration is the outcome of Enumerate.
type Enumeration struct {
	// Teams are the accepted teams, in enumeration order.
	Teams      []*Team
	Candidates int
}

// Accepted returns the number of accepted teams.
func (e *Enumeration) Accepted() int { return len(e.Teams) }

type candidate struct {
	ordinal int
	members []int
}

func (e *Enumerator) validate(rst *roster.Roster) error {
	if e.Cache == nil {
		return ErrCacheMustBeSet
	}

	if rst.Len() > MaxRosterSize {
		return errors.Wrapf(ErrRosterTooLarge, "%d people", rst.Len())
	}

	if e.Size < 1 || e.Size > rst.Len() {
		return errors.Wrapf(ErrInvalidTeamSize, "size %d for %d people", e.Size, rst.Len())
	}

	return e.Band.Validate()
}

// Enumerate visits every combination of Size roster positions in lexicographic order.
// The mean of every candidate is written to the cache, accepted or not.
func (e *Enumerator) Enumerate(ctx context.Context, rst *roster.Roster) (*Enumeration, error) {
	err := e.validate(rst)
	if err != nil {
		return nil, err
	}

	pipe, err := pipeline.New(ctx, e.Options...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create enumeration pipeline")
	}

	res := &Enumeration{}

	candidates, err := pipeline.AddRootStep(pipe, "candidates", func(ctx context.Context, rootChan chan<- *candidate) error {
		ordinal := 0

		return combin.ForEach(rst.Len(), e.Size, func(idx []int) error {
			c := &candidate{ordinal: ordinal, members: slices.Clone(idx)}
			ordinal++

			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- c:
			}

			res.Candidates++

			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add candidates step")
	}

	accepted, err := pipeline.AddStepOneToOneOrZero(pipe, "team means", candidates, func(_ context.Context, c *candidate) (*Team, error) {
		t := New(rst, c.ordinal, c.members)
		mean := t.Mean(rst)
		e.Cache.Put(t.Key, mean)

		if !e.Band.Contains(mean) {
			return nil, nil //nolint:nilnil // rejected teams are dropped by the step
		}

		return t, nil
	}, pipeline.StepConcurrency[*Team](e.Workers))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add team means step")
	}

	err = pipeline.AddSink(pipe, "accepted teams", accepted, func(_ context.Context, t *Team) error {
		res.Teams = append(res.Teams, t)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add accepted teams sink")
	}

	err = pipe.Run()
	if err != nil {
		return nil, errors.Wrap(err, "unable to enumerate teams")
	}

	slices.SortFunc(res.Teams, func(a, b *Team) int { return a.Ordinal - b.Ordinal })

	return res, nil
}
