// Package metrics records the counters of a run in a prometheus registry.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/askiada/go-teambalance/pkg/pipeline/measure"
)

const namespace = "teambalance"

// Recorder holds the metrics of a single run. Each recorder owns its registry.
type Recorder struct {
	registry *prometheus.Registry

	maskedCells     prometheus.Counter
	candidates      prometheus.Counter
	teamsAccepted   prometheus.Counter
	partitionsValid prometheus.Counter
	prefixesPruned  prometheus.Counter
	solutionFound   prometheus.Gauge
	bestScore       prometheus.Gauge
	stepAvgDuration *prometheus.GaugeVec
	stepItems       *prometheus.GaugeVec
	runDuration     prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		maskedCells: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "masked_cells_total",
			Help:      "Score cells discarded as outliers",
		}),
		candidates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate teams enumerated",
		}),
		teamsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teams_accepted_total",
			Help:      "Candidate teams whose mean lies in the band",
		}),
		partitionsValid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partitions_valid_total",
			Help:      "Disjoint partitions covering the roster that were scored",
		}),
		prefixesPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prefixes_pruned_total",
			Help:      "Partial partitions abandoned because two teams share a person",
		}),
		solutionFound: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "solution_found",
			Help:      "1 when a partition scored below the sentinel",
		}),
		bestScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_objective_score",
			Help:      "Standard deviation of the team means of the best partition",
		}),
		stepAvgDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "step_avg_duration_seconds",
			Help:      "Average time spent processing one element in a pipeline step",
		}, []string{"pipeline", "step"}),
		stepItems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "step_items",
			Help:      "Elements processed by a pipeline step",
		}, []string{"pipeline", "step"}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) ObserveRoster(masked int) {
	r.maskedCells.Add(float64(masked))
}

func (r *Recorder) ObserveEnumeration(candidates, accepted int) {
	r.candidates.Add(float64(candidates))
	r.teamsAccepted.Add(float64(accepted))
}

func (r *Recorder) ObserveSearch(valid, pruned int64, found bool, score float64) {
	r.partitionsValid.Add(float64(valid))
	r.prefixesPruned.Add(float64(pruned))
	r.bestScore.Set(score)

	if found {
		r.solutionFound.Set(1)
	} else {
		r.solutionFound.Set(0)
	}
}

// ObserveMeasure exports the per-step averages collected while pipelineName ran.
func (r *Recorder) ObserveMeasure(pipelineName string, msr measure.Measure) {
	for step, mt := range msr.AllMetrics() {
		if mt.Count() == 0 {
			continue
		}

		r.stepAvgDuration.WithLabelValues(pipelineName, step).Set(mt.AVGDuration().Seconds())
		r.stepItems.WithLabelValues(pipelineName, step).Set(float64(mt.Count()))
	}
}

func (r *Recorder) ObserveRunDuration(elapsed time.Duration) {
	r.runDuration.Set(elapsed.Seconds())
}

// WriteTextfile writes every metric in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, r.registry)
	if err != nil {
		return errors.Wrapf(err, "unable to write metrics to %s", path)
	}

	return nil
}
