package partition

import "github.com/pkg/errors"

var (
	ErrMissingTeamMean = errors.New("team mean is missing from the cache")
	ErrInvalidGroups   = errors.New("number of groups must be at least 1")
	ErrCacheMustBeSet  = errors.New("mean cache must be set")
)
