package measure

import (
	"time"

	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Details.Name, 1)
	pm.AddMetric(model.EndStep.Details.Name, 1)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) PrepareSink(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

func (pm *pipelineMeasure) OnStepOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt := pm.GetMetric(step.Name)
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (pm *pipelineMeasure) OnSinkOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt := pm.GetMetric(step.Name)
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (pm *pipelineMeasure) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	pm.GetMetric(step.Name).SetTotalDuration(totalDuration)
	pm.GetMetric(model.EndStep.Details.Name).SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure records the duration of every step of a pipeline into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
