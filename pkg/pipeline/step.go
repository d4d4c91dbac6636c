package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

func sequentialOneToOne[I, O any](ctx context.Context, goIdx int, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error), keep func(O) bool) error {
	for {
		start := time.Now()

		var (
			in I
			ok bool
		)

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok = <-input.Output:
		}

		if !ok {
			return nil
		}

		startFn := time.Now()

		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return errors.Wrapf(err, "go routine %d", goIdx)
		}

		endFn := time.Since(startFn)

		if keep != nil && !keep(out) {
			continue
		}

		// check the context again so that running workers stop adding elements once the
		// pipeline is cancelled.
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case output.Output <- out:
		}

		for _, opt := range opts {
			err := opt.OnStepOutput(input.Details, output.Details, time.Since(start)-endFn, endFn)
			if err != nil {
				return errors.Wrap(err, "unable to run on step output function")
			}
		}
	}
}

func concurrentOneToOne[I, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error), keep func(O) bool) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)

	// each worker stops as soon as one of them fails
	for goIdx := range output.Details.Concurrent {
		errGrp.Go(func() error {
			return sequentialOneToOne(dCtx, goIdx, opts, input, output, oneToOneFn, keep)
		})
	}

	return errGrp.Wait()
}

func runOneToOne[I, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error), keep func(O) bool) error {
	if output.Details.Concurrent < 2 {
		output.Details.Concurrent = 1

		return sequentialOneToOne(ctx, 0, opts, input, output, oneToOneFn, keep)
	}

	return concurrentOneToOne(ctx, opts, input, output, oneToOneFn, keep)
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(input.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

func addStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), keep func(O) bool, opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()

		err := runOneToOne(pipe.ctx, pipe.opts, input, step, oneToOneFn, keep)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(decoratedError)

	return step, nil
}

// AddStepOneToOne adds a step producing exactly one output per input.
// With StepConcurrency above 1 the output order is not guaranteed.
func AddStepOneToOne[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	return addStep(pipe, name, input, oneToOneFn, nil, opts...)
}

// AddStepOneToOneOrZero adds a step that drops every output equal to the zero value of O.
func AddStepOneToOneOrZero[I any, O comparable](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	var zero O

	return addStep(pipe, name, input, oneToOneFn, func(out O) bool { return out != zero }, opts...)
}
