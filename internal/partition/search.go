package partition

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/askiada/go-teambalance/internal/combin"
	"github.com/askiada/go-teambalance/internal/roster"
	"github.com/askiada/go-teambalance/internal/stats"
	"github.com/askiada/go-teambalance/internal/team"
	"github.com/askiada/go-teambalance/pkg/pipeline"
	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

// Searcher looks for the partition of a roster into Groups teams minimising the population
// standard deviation of the team means.
type Searcher struct {
	Groups int
	// Sentinel is the initial best score. Only partitions scoring strictly below it are kept.
	Sentinel float64
	Workers  int
	// Options are attached to the search pipeline.
	Options []model.PipelineOption
}

type shardResult struct {
	best   *scored
	valid  int64
	pruned int64
}

type search struct {
	teams    []*team.Team
	means    []float64
	groups   int
	fullMask uint64
	sentinel float64
}

func rosterMask(people int) uint64 {
	if people >= 64 {
		return ^uint64(0)
	}

	return 1<<uint(people) - 1
}

// Search walks every combination of Groups teams in lexicographic order and keeps the first
// one reaching the lowest score. teams must be in enumeration order and their means must be
// in cache.
func (s *Searcher) Search(ctx context.Context, rst *roster.Roster, teams []*team.Team, cache *team.MeanCache) (*Result, error) {
	if s.Groups < 1 {
		return nil, errors.Wrapf(ErrInvalidGroups, "%d", s.Groups)
	}

	if cache == nil {
		return nil, ErrCacheMustBeSet
	}

	srch := &search{
		teams:    teams,
		means:    make([]float64, len(teams)),
		groups:   s.Groups,
		fullMask: rosterMask(rst.Len()),
		sentinel: s.Sentinel,
	}

	for i, t := range teams {
		mean, ok := cache.Get(t.Key)
		if !ok {
			return nil, errors.Wrapf(ErrMissingTeamMean, "team %v", t.Key.Members())
		}

		srch.means[i] = mean
	}

	res := &Result{
		ObjectiveScore: s.Sentinel,
		SearchSpace:    s.SearchSpace(len(teams)),
	}

	pipe, err := pipeline.New(ctx, s.Options...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create search pipeline")
	}

	shards, err := pipeline.AddRootStep(pipe, "shards", func(ctx context.Context, rootChan chan<- int) error {
		for first := 0; first+s.Groups <= len(teams); first++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- first:
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add shards step")
	}

	searched, err := pipeline.AddStepOneToOne(pipe, "search shard", shards, srch.shard,
		pipeline.StepConcurrency[*shardResult](s.Workers))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add search shard step")
	}

	var best *scored

	err = pipeline.AddSink(pipe, "best partition", searched, func(_ context.Context, sr *shardResult) error {
		res.Valid += sr.valid
		res.Pruned += sr.pruned

		if sr.best != nil && sr.best.better(best) {
			best = sr.best
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add best partition sink")
	}

	err = pipe.Run()
	if err != nil {
		return nil, errors.Wrap(err, "unable to search partitions")
	}

	if best == nil {
		return res, nil
	}

	res.Found = true
	res.ObjectiveScore = best.score
	res.Best = &Partition{
		Indices:        best.indices,
		ObjectiveScore: best.score,
	}

	for _, idx := range best.indices {
		res.Best.Teams = append(res.Best.Teams, teams[idx])
		res.Best.Means = append(res.Best.Means, srch.means[idx])
	}

	return res, nil
}

// shard searches the combinations whose first team is teams[first].
func (s *search) shard(ctx context.Context, first int) (*shardResult, error) {
	res := &shardResult{}
	path := make([]int, 1, s.groups)
	path[0] = first
	means := make([]float64, s.groups)

	var walk func(start int, mask uint64) error

	walk = func(start int, mask uint64) error {
		if len(path) == s.groups {
			if mask != s.fullMask {
				return nil
			}

			res.valid++

			for i, idx := range path {
				means[i] = s.means[idx]
			}

			score := stats.PopulationStdDev(means)

			threshold := s.sentinel
			if res.best != nil {
				threshold = res.best.score
			}

			// NaN never compares below the threshold
			if score < threshold {
				res.best = &scored{indices: append([]int(nil), path...), score: score}
			}

			return nil
		}

		for next := start; next <= len(s.teams)-(s.groups-len(path)); next++ {
			if len(path) == 1 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			if mask&s.teams[next].Mask != 0 {
				res.pruned++

				continue
			}

			path = append(path, next)

			err := walk(next+1, mask|s.teams[next].Mask)
			if err != nil {
				return err
			}

			path = path[:len(path)-1]
		}

		return nil
	}

	err := walk(first+1, s.teams[first].Mask)
	if err != nil {
		return nil, errors.Wrapf(err, "shard %d", first)
	}

	return res, nil
}

// SearchSpace returns C(teams, Groups), the number of combinations a search over that many
// accepted teams covers.
func (s *Searcher) SearchSpace(teams int) *big.Int {
	return combin.Binomial(teams, s.Groups)
}
