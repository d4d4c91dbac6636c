package model

// StepType identifies the role of a step in the pipeline graph.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step. Options receive it in every hook.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is the output side of a stage. Downstream stages read from Output until it is closed.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
