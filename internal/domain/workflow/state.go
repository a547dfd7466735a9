package workflow

// State represents a request status in the approval lifecycle
type State string

const (
	// Package and individual service requests
	StateProcessing State = "processing"
	StateApproved   State = "approved"
	StateRejected   State = "rejected"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"

	// Financial aid requests
	StatePending          State = "pending"
	StateUnderReview      State = "under_review"
	StateRequiresMoreInfo State = "requires_more_info"
)

var validStates = map[State]bool{
	StateProcessing:       true,
	StateApproved:         true,
	StateRejected:         true,
	StateInProgress:       true,
	StateCompleted:        true,
	StatePending:          true,
	StateUnderReview:      true,
	StateRequiresMoreInfo: true,
}

var terminalStates = map[State]bool{
	StateRejected:  true,
	StateCompleted: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}
