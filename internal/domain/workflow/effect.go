package workflow

// Effect describes a side effect the settlement coordinator must apply after
// a transition commits. Effects are declared on transitions so the machine
// itself stays pure: it reports what must happen, it never performs it.
type Effect interface {
	effect()
}

// CompletePayment transitions the linked payment transaction to completed.
type CompletePayment struct{}

// FailPayment transitions the linked payment transaction to failed, carrying
// the rejection reason as the failure reason.
type FailPayment struct{}

// ComputeExpiry derives the request expiry date from the purchased package
// duration (monthly or yearly).
type ComputeExpiry struct{}

// ApplyApprovalDefaults fills financial-aid approval details that the caller
// left unset (approved amount, discount, validity window).
type ApplyApprovalDefaults struct{}

// ScheduleFollowUp marks the request for follow-up and sets the follow-up date.
type ScheduleFollowUp struct{}

func (CompletePayment) effect()       {}
func (FailPayment) effect()           {}
func (ComputeExpiry) effect()         {}
func (ApplyApprovalDefaults) effect() {}
func (ScheduleFollowUp) effect()      {}
