package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-teambalance/pkg/pipeline/model"
)

var concurrencyCases = map[string]struct {
	concurrent int
}{
	"sequential":     {concurrent: 1},
	"sequential v2":  {concurrent: 0},
	"concurrent 2":   {concurrent: 2},
	"concurrent 100": {concurrent: 100},
}

func notZero(i int) bool { return i != 0 }

func TestOneToOne(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10), Details: &model.StepInfo{Name: "input"}}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)
				err := runOneToOne(ctx, nil, input, output, func(_ context.Context, i int) (int, error) {
					return i * 2, nil
				}, nil)
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-got)
		})
	}
}

func TestOneToOneOrZero(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10), Details: &model.StepInfo{Name: "input"}}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)
				err := runOneToOne(ctx, nil, input, output, func(_ context.Context, i int) (int, error) {
					if i%2 == 1 {
						return 0, nil
					}

					return i, nil
				}, notZero)
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{2, 4, 6, 8}, <-got)
		})
	}
}

func TestOneToOneError(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10), Details: &model.StepInfo{Name: "input"}}
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}
			done := make(chan struct{})

			go func() {
				defer close(done)
				processOutputChan(t, output.Output)
			}()

			err := runOneToOne(ctx, nil, input, output, func(_ context.Context, i int) (int, error) {
				if i == 5 {
					return 0, assert.AnError
				}

				return i, nil
			}, nil)
			for range input.Output {
			}
			close(output.Output)
			<-done

			assert.ErrorIs(t, err, assert.AnError)
		})
	}
}

func TestOneToOneCancelInput(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			input := &model.Step[int]{Output: createInputChanWithCancel(t, 10, 5, cancel), Details: &model.StepInfo{Name: "input"}}
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}
			done := make(chan struct{})

			go func() {
				defer close(done)
				processOutputChan(t, output.Output)
			}()

			err := runOneToOne(ctx, nil, input, output, func(_ context.Context, i int) (int, error) {
				return i, nil
			}, nil)
			close(output.Output)
			<-done

			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}
