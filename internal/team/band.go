package team

import (
	"math"

	"github.com/pkg/errors"
)

// Band is the closed interval of acceptable team means.
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether low <= mean <= high. NaN is never contained.
func (b Band) Contains(mean float64) bool {
	return b.Low <= mean && mean <= b.High
}

func (b Band) Validate() error {
	if math.IsNaN(b.Low) || math.IsNaN(b.High) || b.Low > b.High {
		return errors.Wrapf(ErrInvalidBand, "[%v, %v]", b.Low, b.High)
	}

	return nil
}
