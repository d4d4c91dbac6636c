// Package combin iterates k-combinations of n indices in lexicographic order.
package combin

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrInvalidSize is returned when k is negative or larger than n.
var ErrInvalidSize = errors.New("combination size must be between 0 and n")

// ErrStop can be returned by a ForEach callback to end the iteration early without error.
var ErrStop = errors.New("stop iteration")

// ForEach calls fn with every k-combination of [0, n) in ascending lexicographic order,
// the same order itertools.combinations yields. idx is reused between calls and must be
// copied to be retained.
func ForEach(n, k int, fn func(idx []int) error) error {
	if k < 0 || k > n {
		return errors.Wrapf(ErrInvalidSize, "n=%d k=%d", n, k)
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		err := fn(idx)
		if errors.Is(err, ErrStop) {
			return nil
		}

		if err != nil {
			return err
		}

		// rightmost position that can still move forward
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}

		if i < 0 {
			return nil
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Binomial returns C(n, k). It is zero when k is outside [0, n].
func Binomial(n, k int) *big.Int {
	if k < 0 || n < 0 || k > n {
		return big.NewInt(0)
	}

	return new(big.Int).Binomial(int64(n), int64(k))
}
