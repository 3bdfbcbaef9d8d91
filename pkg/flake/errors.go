package flake

import "errors"

var (
	// ErrDuplicateName is returned when adding a flake under a name that
	// is already tracked.
	ErrDuplicateName = errors.New("already tracked")
	// ErrUnknownName is returned when an operation references a name the
	// registry does not contain.
	ErrUnknownName = errors.New("not tracked")
)
