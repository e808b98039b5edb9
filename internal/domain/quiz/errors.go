package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionComplete is returned when a finished batch is asked for
	// another question or answer.
	ErrSessionComplete = errors.New("quiz session already complete")

	// ErrCorruptSession is returned for stored state that breaks the
	// index invariant.
	ErrCorruptSession = errors.New("quiz session state is corrupt")
)

// InsufficientPoolError is returned when a candidate pool cannot fill a batch.
type InsufficientPoolError struct {
	Scope string // what the pool was drawn from, e.g. "topic Algebra"
	Need  int
	Have  int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("not enough questions in %s: need %d, have %d", e.Scope, e.Need, e.Have)
}
