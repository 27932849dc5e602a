package session

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition marks an operation the current phase does not allow.
// The session is unchanged when it is returned.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrNoConfigurationSelected is returned by Start before any selection.
var ErrNoConfigurationSelected = fmt.Errorf("%w: no configuration selected", ErrInvalidTransition)

// ErrUnknownConfiguration is returned when a selection names a key the
// catalog does not contain.
var ErrUnknownConfiguration = errors.New("unknown configuration")

// TransitionError reports a rejected operation and the phase it was tried in.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed while %s", e.Op, e.Phase)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
