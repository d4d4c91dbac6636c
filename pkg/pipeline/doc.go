// Package pipeline runs a computation as a series of stages connected by channels.
//
// A root step produces elements, intermediate steps transform or drop them, and a sink consumes
// the result. Each stage runs in its own goroutine and a step can fan out to several workers
// with StepConcurrency. The pipeline stops on the first error returned by any stage and
// cancels the others through the shared context.
//
// Options implementing model.PipelineOption observe every stage. The measure and drawer
// sub-packages use this to time the stages and to render the executed graph.
package pipeline
