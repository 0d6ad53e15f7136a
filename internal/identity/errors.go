package identity

import (
	"errors"
	"fmt"
)

// ErrNestedPrivileged is returned when WithPrivileged is entered while
// another privileged section is already active. The save register holds a
// single slot, so nesting would lose the outer caller's identity.
var ErrNestedPrivileged = errors.New("privileged identity context is already active")

// QueryError indicates the active identity could not be determined.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to determine active identity: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// SwitchError indicates a switch to the named identity was rejected.
type SwitchError struct {
	Name string
	Err  error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("failed to switch to identity '%s': %v", e.Name, e.Err)
}

func (e *SwitchError) Unwrap() error { return e.Err }

// ProvisionError indicates creating an ephemeral identity failed, carrying
// the step that failed.
type ProvisionError struct {
	Name string
	Step string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("failed to provision identity '%s' at step %s: %v", e.Name, e.Step, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// RemoveError indicates an identity could not be removed, typically because
// the switch to the administrative identity failed.
type RemoveError struct {
	Name string
	Err  error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("failed to remove identity '%s': %v", e.Name, e.Err)
}

func (e *RemoveError) Unwrap() error { return e.Err }
