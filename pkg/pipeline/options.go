package pipeline

import "github.com/askiada/go-teambalance/pkg/pipeline/model"

type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets the number of workers reading the input of a step.
// Values below 2 run the step sequentially.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}
