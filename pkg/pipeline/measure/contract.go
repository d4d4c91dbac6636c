package measure

import "time"

// Measure holds one Metric per pipeline step.
type Measure interface {
	AddMetric(name string, concurrent int) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations observed for a single step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddTransportDuration(inputStepName string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGTransportDuration() map[string]*TransportInfo
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	Count() int64
}
