package config

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
)

var ErrUnknownVariant = errors.New("unknown variant")

// Preset holds the built-in settings of a variant.
type Preset struct {
	Name              string
	Size              int
	Groups            int
	Low               float64
	High              float64
	ShowAcceptedCount bool
}

var presets = map[string]Preset{
	"four": {
		Name:              "four",
		Size:              4,
		Groups:            4,
		Low:               6.2,
		High:              6.6,
		ShowAcceptedCount: true,
	},
	"three": {
		Name:   "three",
		Size:   3,
		Groups: 5,
		Low:    6.3,
		High:   6.7,
	},
}

// Lookup returns the preset called name.
func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, errors.Wrapf(ErrUnknownVariant, "%q", name)
	}

	return p, nil
}

// Presets returns the built-in presets sorted by name.
func Presets() []Preset {
	res := make([]Preset, 0, len(presets))
	for _, p := range presets {
		res = append(res, p)
	}

	slices.SortFunc(res, func(a, b Preset) int { return cmp.Compare(a.Name, b.Name) })

	return res
}

// People is the roster size the preset partitions.
func (p Preset) People() int { return p.Size * p.Groups }
