package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

func prepareSink[I any](pipe *Pipeline, name string, input *model.Step[I]) (*model.StepInfo, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	details := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(input.Details, details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before sink function")
		}
	}

	return details, nil
}

func runSink[I any](ctx context.Context, pipe *Pipeline, input *model.Step[I], details *model.StepInfo, sinkFn func(ctx context.Context, input I) error) error {
	for {
		startInputChan := time.Now()

		var (
			in I
			ok bool
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok = <-input.Output:
		}

		if !ok {
			return nil
		}

		endInputChan := time.Since(startInputChan)
		startFn := time.Now()

		err := sinkFn(ctx, in)
		if err != nil {
			return err
		}

		endFn := time.Since(startFn)

		for _, opt := range pipe.opts {
			err := opt.OnSinkOutput(input.Details, details, endInputChan, endFn)
			if err != nil {
				return errors.Wrap(err, "unable to run on sink output function")
			}
		}
	}
}

// AddSink adds the terminal stage of the pipeline. sinkFn is called sequentially, so it can
// accumulate state without locking.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	details, err := prepareSink(pipe, name, input)
	if err != nil {
		return err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer close(errC)

		err := runSink(pipe.ctx, pipe, input, details, sinkFn)
		if err != nil {
			errC <- err

			return
		}

		for _, opt := range pipe.opts {
			err := opt.AfterSink(details, time.Since(pipe.startTime))
			if err != nil {
				errC <- errors.Wrap(err, "unable to run after sink function")

				return
			}
		}
	}()
	pipe.errcList.add(decoratedError)

	return nil
}
