package measure

import (
	"sync"
)

// DefaultMeasure is an in-memory Measure.
type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		mu:            &sync.Mutex{},
		allTransports: make(map[string]*TransportInfo),
		concurrent:    max(concurrent, 1),
	}
	m.Steps[name] = mt

	return mt
}

// GetMetric returns nil for a step that was never added.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[string]Metric, len(m.Steps))
	for name, mt := range m.Steps {
		res[name] = mt
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
