// Package balance runs a complete team balancing: it loads the roster, enumerates the
// teams and searches the most even partition.
package balance

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-teambalance/internal/config"
	"github.com/askiada/go-teambalance/internal/metrics"
	"github.com/askiada/go-teambalance/internal/partition"
	"github.com/askiada/go-teambalance/internal/roster"
	"github.com/askiada/go-teambalance/internal/team"
	"github.com/askiada/go-teambalance/pkg/pipeline/drawer"
	"github.com/askiada/go-teambalance/pkg/pipeline/measure"
	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

const (
	enumeratePipeline = "enumerate"
	searchPipeline    = "search"
)

// Outcome gathers everything a run produced.
type Outcome struct {
	RunID       string
	Config      *config.Config
	Roster      *roster.Roster
	Summary     *roster.Summary
	Cache       *team.MeanCache
	Enumeration *team.Enumeration
	Result      *partition.Result
	Duration    time.Duration
}

// Mean returns the cached mean of t.
func (o *Outcome) Mean(t *team.Team) float64 {
	mean, _ := o.Cache.Get(t.Key)

	return mean
}

// Runner executes runs. Recorder may be nil.
type Runner struct {
	Logger   *zap.Logger
	Recorder *metrics.Recorder
}

func (r *Runner) pipelineOptions(cfg *config.Config, name string) ([]model.PipelineOption, measure.Measure) {
	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{measure.PipelineMeasure(msr)}

	if cfg.Graph.Dir != "" {
		dotFile := filepath.Join(cfg.Graph.Dir, name+".gv")
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(dotFile), msr))
	}

	return opts, msr
}

// Run balances the roster read from cfg.Input.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	start := time.Now()
	out := &Outcome{RunID: uuid.NewString(), Config: cfg, Cache: team.NewMeanCache()}
	logger := r.Logger.With(zap.String("run_id", out.RunID), zap.String("variant", cfg.Variant))

	if cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout)
		defer cancel()
	}

	if cfg.Graph.Dir != "" {
		err := os.MkdirAll(cfg.Graph.Dir, 0o755)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create graph directory %s", cfg.Graph.Dir)
		}
	}

	rst, summary, err := roster.LoadFile(cfg.Input, roster.Options{ZThreshold: cfg.Outliers.ZThreshold})
	if err != nil {
		return nil, errors.Wrap(err, "unable to load roster")
	}

	out.Roster, out.Summary = rst, summary
	logger.Info("roster loaded",
		zap.String("input", cfg.Input),
		zap.Int("people", rst.Len()),
		zap.Int("rows", summary.Rows),
		zap.Int("masked_cells", summary.TotalMasked()),
	)

	if undefined := rst.Undefined(); len(undefined) > 0 {
		logger.Warn("people without any usable score are left out of every team", zap.Strings("people", undefined))
	}

	if want := cfg.Team.Size * cfg.Team.Groups; want != rst.Len() {
		logger.Warn("teams cannot cover the roster exactly",
			zap.Int("people", rst.Len()),
			zap.Int("team_size", cfg.Team.Size),
			zap.Int("groups", cfg.Team.Groups),
		)
	}

	enumOpts, enumMeasure := r.pipelineOptions(cfg, enumeratePipeline)
	enum := &team.Enumerator{
		Size:    cfg.Team.Size,
		Band:    team.Band{Low: cfg.Band.Low, High: cfg.Band.High},
		Cache:   out.Cache,
		Workers: cfg.Search.Workers,
		Options: enumOpts,
	}

	out.Enumeration, err = enum.Enumerate(ctx, rst)
	if err != nil {
		return nil, errors.Wrap(err, "unable to enumerate teams")
	}

	logger.Info("teams enumerated",
		zap.Int("candidates", out.Enumeration.Candidates),
		zap.Int("accepted", out.Enumeration.Accepted()),
		zap.Int("cached_means", out.Cache.Len()),
	)

	searchOpts, searchMeasure := r.pipelineOptions(cfg, searchPipeline)
	srch := &partition.Searcher{
		Groups:   cfg.Team.Groups,
		Sentinel: cfg.Search.Sentinel,
		Workers:  cfg.Search.Workers,
		Options:  searchOpts,
	}

	logger.Debug("searching partitions",
		zap.Stringer("search_space", srch.SearchSpace(out.Enumeration.Accepted())),
		zap.Int("workers", cfg.Search.Workers),
	)

	out.Result, err = srch.Search(ctx, rst, out.Enumeration.Teams, out.Cache)
	if err != nil {
		return nil, errors.Wrap(err, "unable to search partitions")
	}

	out.Duration = time.Since(start)

	logger.Info("search done",
		zap.Stringer("search_space", out.Result.SearchSpace),
		zap.Int64("valid", out.Result.Valid),
		zap.Int64("pruned", out.Result.Pruned),
		zap.Bool("found", out.Result.Found),
		zap.Float64("objective_score", out.Result.ObjectiveScore),
		zap.Duration("duration", out.Duration),
	)

	if r.Recorder != nil {
		r.record(out, enumMeasure, searchMeasure)

		if cfg.Metrics.Textfile != "" {
			err = r.Recorder.WriteTextfile(cfg.Metrics.Textfile)
			if err != nil {
				return nil, err
			}

			logger.Info("metrics written", zap.String("path", cfg.Metrics.Textfile))
		}
	}

	if cfg.Graph.Dir != "" {
		logger.Info("pipeline graphs written", zap.String("dir", cfg.Graph.Dir))
	}

	return out, nil
}

func (r *Runner) record(out *Outcome, enumMeasure, searchMeasure measure.Measure) {
	r.Recorder.ObserveRoster(out.Summary.TotalMasked())
	r.Recorder.ObserveEnumeration(out.Enumeration.Candidates, out.Enumeration.Accepted())
	r.Recorder.ObserveSearch(out.Result.Valid, out.Result.Pruned, out.Result.Found, out.Result.ObjectiveScore)
	r.Recorder.ObserveMeasure(enumeratePipeline, enumMeasure)
	r.Recorder.ObserveMeasure(searchPipeline, searchMeasure)
	r.Recorder.ObserveRunDuration(out.Duration)
}
