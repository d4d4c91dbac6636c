package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStepOption
	pipelineSinkOption

	// Finish runs after the pipeline is finished.
	Finish() error
}

// pipelineStepOption defines the interface for step options at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs before the step is executed. Root steps use StartStep as parent.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs everytime something is pushed to the output of the step.
	OnStepOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
}

// pipelineSinkOption defines the interface for sink options at the pipeline level.
type pipelineSinkOption interface {
	// PrepareSink runs before the sink step is executed.
	PrepareSink(parentStep, step *StepInfo) error
	// OnSinkOutput runs everytime the sink consumes an element.
	OnSinkOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
	// AfterSink runs after the sink step is executed.
	AfterSink(step *StepInfo, totalDuration time.Duration) error
}
