package roster

import "github.com/pkg/errors"

var (
	ErrEmptyInput      = errors.New("input has no header")
	ErrNoPeople        = errors.New("roster must contain at least one person")
	ErrEmptyName       = errors.New("person name must not be empty")
	ErrDuplicatePerson = errors.New("person appears more than once")
	ErrMalformedValue  = errors.New("value is not a number")
)
