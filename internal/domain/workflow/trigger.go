package workflow

// Trigger represents an operation that can cause a state transition
type Trigger string

const (
	TriggerApprove       Trigger = "approve"
	TriggerReject        Trigger = "reject"
	TriggerRequestInfo   Trigger = "request_info"
	TriggerStartProgress Trigger = "start_progress"
	TriggerComplete      Trigger = "complete"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
