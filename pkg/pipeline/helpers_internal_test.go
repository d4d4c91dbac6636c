package pipeline

import (
	"context"
	"testing"
)

func createInputChan(t *testing.T, total int) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			inputChan <- i
		}
	}()

	return inputChan
}

// createInputChanWithCancel cancels the context once offset is reached. The channel is left
// open after that, so consumers can only stop through the context.
func createInputChanWithCancel(t *testing.T, total int, offset int, cancel context.CancelFunc) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		for i := range total {
			if i == offset {
				cancel()

				return
			}

			inputChan <- i
		}

		close(inputChan)
	}()

	return inputChan
}

func processOutputChan(t *testing.T, output <-chan int) []int {
	t.Helper()

	res := []int{}

	for out := range output {
		res = append(res, out)
	}

	return res
}
