package workflow

import "context"

// Transition is the result of firing a trigger: the states involved plus the
// side effects the caller must apply.
type Transition struct {
	From    State
	To      State
	Effects []Effect
}

// StateMachine tracks the current state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, returning the transition that
	// applied (including its declared effects)
	Fire(ctx context.Context, trigger Trigger) (Transition, error)

	// PermittedTriggers returns all triggers that can be fired in the current state
	PermittedTriggers() []Trigger
}
