package workflow

import (
	domainwf "github.com/lexserve/backoffice/internal/domain/workflow"
)

// BuildServiceRequestMachine creates a state machine for package service
// requests. Rejection leaves the payment transaction untouched: package
// rejections were never synced to payments in the original back office and
// that asymmetry is kept.
func BuildServiceRequestMachine(initialState domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StateProcessing).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved,
			domainwf.ComputeExpiry{}, domainwf.CompletePayment{}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	// approved requests age into active/expired externally - no outgoing
	// transitions are modeled here

	return builder.Build(initialState)
}

// BuildIndividualRequestMachine creates a state machine for individual
// service requests. The in_progress/completed legs are driven outside this
// core but must be representable.
func BuildIndividualRequestMachine(initialState domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StateProcessing).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved,
			domainwf.CompletePayment{}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected,
			domainwf.FailPayment{})

	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerStartProgress, domainwf.StateInProgress)

	builder.Configure(domainwf.StateInProgress).
		Permit(domainwf.TriggerComplete, domainwf.StateCompleted)

	return builder.Build(initialState)
}

// BuildFinancialAidMachine creates a state machine for financial aid
// requests. The administrative status override is intentionally NOT part of
// this machine; see SettlementService.OverrideAidStatus.
func BuildFinancialAidMachine(initialState domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StatePending).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved,
			domainwf.ApplyApprovalDefaults{}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected).
		Permit(domainwf.TriggerRequestInfo, domainwf.StateRequiresMoreInfo,
			domainwf.ScheduleFollowUp{})

	builder.Configure(domainwf.StateUnderReview).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved,
			domainwf.ApplyApprovalDefaults{}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected).
		Permit(domainwf.TriggerRequestInfo, domainwf.StateRequiresMoreInfo,
			domainwf.ScheduleFollowUp{})

	builder.Configure(domainwf.StateRequiresMoreInfo).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved,
			domainwf.ApplyApprovalDefaults{}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	return builder.Build(initialState)
}
