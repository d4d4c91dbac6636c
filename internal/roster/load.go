package roster

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-teambalance/internal/stats"
)

// Options controls how raw rankings become scores.
type Options struct {
	// ZThreshold masks every observation whose z-score magnitude is above it. Zero disables masking.
	ZThreshold float64
}

// Summary describes what Load read.
type Summary struct {
	Rows   int
	Masked map[string]int
}

// TotalMasked returns the number of observations masked across all people.
func (s *Summary) TotalMasked() int {
	total := 0
	for _, n := range s.Masked {
		total += n
	}

	return total
}

var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts Options) (*Roster, *Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	rst, summary, err := Load(file, opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to load %s", path)
	}

	return rst, summary, nil
}

// Load reads a CSV of rankings where the header holds one person per column and every
// following row is one observation. Each person's score is the mean of their observations
// once outliers are masked.
func Load(r io.Reader, opts Options) (*Roster, *Summary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyInput
	}

	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to read header")
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	columns := make([][]float64, len(names))
	rows := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to read row %d", rows+1)
		}

		rows++

		for col, cell := range record {
			value, err := parseCell(cell)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "row %d column %q", rows, names[col])
			}

			columns[col] = append(columns[col], value)
		}
	}

	summary := &Summary{
		Rows:   rows,
		Masked: make(map[string]int, len(names)),
	}
	people := make([]Person, len(names))

	for col, name := range names {
		values, masked := stats.MaskOutliers(columns[col], opts.ZThreshold)
		score, _ := stats.NanMean(values)

		summary.Masked[name] = masked
		people[col] = Person{Name: name, Score: score}
	}

	rst, err := New(people)
	if err != nil {
		return nil, nil, err
	}

	return rst, summary, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if _, ok := missingTokens[strings.ToLower(cell)]; ok {
		return math.NaN(), nil
	}

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, errors.Wrapf(ErrMalformedValue, "%q", cell)
	}

	return value, nil
}
