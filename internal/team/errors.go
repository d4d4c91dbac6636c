package team

import "github.com/pkg/errors"

var (
	ErrInvalidTeamSize = errors.New("team size must be between 1 and the roster size")
	ErrRosterTooLarge  = errors.New("roster is larger than 64 people")
	ErrInvalidBand     = errors.New("band low bound must not exceed the high bound")
	ErrCacheMustBeSet  = errors.New("mean cache must be set")
)
