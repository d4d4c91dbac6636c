package roster_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-teambalance/internal/roster"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		people      []roster.Person
		expectedErr error
	}{
		"valid": {
			people: []roster.Person{{Name: "ana", Score: 6}, {Name: "bob", Score: 7}},
		},
		"empty": {
			expectedErr: roster.ErrNoPeople,
		},
		"empty name": {
			people:      []roster.Person{{Name: "ana"}, {Name: ""}},
			expectedErr: roster.ErrEmptyName,
		},
		"duplicate": {
			people:      []roster.Person{{Name: "ana"}, {Name: "ana"}},
			expectedErr: roster.ErrDuplicatePerson,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rst, err := roster.New(tc.people)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.people, rst.People())
		})
	}
}

func TestRosterIsReadOnly(t *testing.T) {
	t.Parallel()

	people := []roster.Person{{Name: "ana", Score: 6}}
	rst, err := roster.New(people)
	require.NoError(t, err)

	people[0].Score = 1
	rst.People()[0].Score = 2

	assert.InDelta(t, 6.0, rst.Person(0).Score, 0)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"ana, bob ,cid",
		"5,7,",
		"5,8,3",
		"6,7,NaN",
		"5,7,",
		"6,8,",
		"5,7,",
		"6,8,",
		"5,7,",
		"20,7,",
	}, "\n")

	rst, summary, err := roster.Load(strings.NewReader(input), roster.Options{ZThreshold: 2})
	require.NoError(t, err)

	require.Equal(t, 3, rst.Len())
	assert.Equal(t, 9, summary.Rows)

	assert.Equal(t, "ana", rst.Person(0).Name)
	assert.Equal(t, "bob", rst.Person(1).Name)
	assert.Equal(t, "cid", rst.Person(2).Name)

	// 20 is masked for ana: mean of 5,5,6,5,6,5,6,5
	assert.InDelta(t, 43.0/8, rst.Person(0).Score, 1e-12)
	assert.Equal(t, 1, summary.Masked["ana"])
	assert.InDelta(t, 66.0/9, rst.Person(1).Score, 1e-12)
	assert.Zero(t, summary.Masked["bob"])
	assert.InDelta(t, 3.0, rst.Person(2).Score, 1e-12)
	assert.Equal(t, 1, summary.TotalMasked())
	assert.Empty(t, rst.Undefined())
}

func TestLoadWithoutMasking(t *testing.T) {
	t.Parallel()

	input := "ana\n5\n5\n6\n5\n6\n5\n6\n5\n20\n"

	rst, summary, err := roster.Load(strings.NewReader(input), roster.Options{})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, rst.Person(0).Score, 1e-12)
	assert.Zero(t, summary.TotalMasked())
}

func TestLoadUndefinedScore(t *testing.T) {
	t.Parallel()

	rst, _, err := roster.Load(strings.NewReader("ana,bob\n5,\n6,NA\n"), roster.Options{ZThreshold: 2})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(rst.Person(1).Score))
	assert.Equal(t, []string{"bob"}, rst.Undefined())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expectedErr error
	}{
		"empty input": {
			input:       "",
			expectedErr: roster.ErrEmptyInput,
		},
		"malformed value": {
			input:       "ana,bob\n5,seven\n",
			expectedErr: roster.ErrMalformedValue,
		},
		"infinite value": {
			input:       "ana,bob\n5,Inf\n",
			expectedErr: roster.ErrMalformedValue,
		},
		"duplicate person": {
			input:       "ana,ana\n5,6\n",
			expectedErr: roster.ErrDuplicatePerson,
		},
		"empty name": {
			input:       "ana,\n5,6\n",
			expectedErr: roster.ErrEmptyName,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := roster.Load(strings.NewReader(tc.input), roster.Options{ZThreshold: 2})
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}

	_, _, err := roster.Load(strings.NewReader("ana,bob\n5\n"), roster.Options{})
	require.Error(t, err, "ragged rows are rejected")
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rankings.csv")
	require.NoError(t, os.WriteFile(path, []byte("ana,bob\n5,6\n7,8\n"), 0o600))

	rst, _, err := roster.LoadFile(path, roster.Options{ZThreshold: 2})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, rst.Person(0).Score, 1e-12)
	assert.InDelta(t, 7.0, rst.Person(1).Score, 1e-12)

	_, _, err = roster.LoadFile(filepath.Join(t.TempDir(), "missing.csv"), roster.Options{})
	require.Error(t, err)
}
