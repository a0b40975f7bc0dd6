// Package state defines the lifecycle states a scene moves through.
package state

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a transition the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// Lifecycle represents where a scene is in its load/run/teardown cycle
type Lifecycle int

const (
	Unloaded Lifecycle = iota
	Loading
	Initialized
	Running
	Unloading
	Terminated
)

// String returns the string representation of the lifecycle state
func (s Lifecycle) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loading:
		return "Loading"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Unloading:
		return "Unloading"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether a scene in state s may move to next.
// A scene can be torn down from any live state, so a failed load or init
// still releases what it requested.
func (s Lifecycle) CanTransition(next Lifecycle) bool {
	switch s {
	case Unloaded:
		return next == Loading
	case Loading:
		return next == Initialized || next == Unloading
	case Initialized:
		return next == Running || next == Unloading
	case Running:
		return next == Unloading
	case Unloading:
		return next == Terminated
	default:
		return false
	}
}

// Transition returns next if the move from s is allowed.
func (s Lifecycle) Transition(next Lifecycle) (Lifecycle, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%s -> %s: %w", s, next, ErrInvalidTransition)
	}
	return next, nil
}
