package workflow

import (
	"context"
	"errors"
	"testing"

	domainwf "github.com/lexserve/backoffice/internal/domain/workflow"
)

func TestBuildServiceRequestMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		initial domainwf.State
		trigger domainwf.Trigger
		wantTo  domainwf.State
		wantErr bool
	}{
		{"approve from processing", domainwf.StateProcessing, domainwf.TriggerApprove, domainwf.StateApproved, false},
		{"reject from processing", domainwf.StateProcessing, domainwf.TriggerReject, domainwf.StateRejected, false},
		{"approve from approved", domainwf.StateApproved, domainwf.TriggerApprove, "", true},
		{"reject from rejected", domainwf.StateRejected, domainwf.TriggerReject, "", true},
		{"start progress unsupported", domainwf.StateApproved, domainwf.TriggerStartProgress, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := BuildServiceRequestMachine(tt.initial)
			transition, err := machine.Fire(context.Background(), tt.trigger)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Fire() succeeded, want error")
				}
				if !errors.Is(err, domainwf.ErrInvalidTransition) {
					t.Errorf("Fire() error = %v, want %v", err, domainwf.ErrInvalidTransition)
				}
				return
			}

			if err != nil {
				t.Fatalf("Fire() failed: %v", err)
			}
			if transition.To != tt.wantTo {
				t.Errorf("Fire() transitioned to %v, want %v", transition.To, tt.wantTo)
			}
		})
	}
}

func TestBuildServiceRequestMachine_ApproveEffects(t *testing.T) {
	machine := BuildServiceRequestMachine(domainwf.StateProcessing)

	transition, err := machine.Fire(context.Background(), domainwf.TriggerApprove)
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	if len(transition.Effects) != 2 {
		t.Fatalf("approve carries %d effects, want 2", len(transition.Effects))
	}
	if _, ok := transition.Effects[0].(domainwf.ComputeExpiry); !ok {
		t.Errorf("Effects[0] = %T, want ComputeExpiry", transition.Effects[0])
	}
	if _, ok := transition.Effects[1].(domainwf.CompletePayment); !ok {
		t.Errorf("Effects[1] = %T, want CompletePayment", transition.Effects[1])
	}
}

func TestBuildServiceRequestMachine_RejectHasNoEffects(t *testing.T) {
	machine := BuildServiceRequestMachine(domainwf.StateProcessing)

	transition, err := machine.Fire(context.Background(), domainwf.TriggerReject)
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	// Package rejection never touches the payment transaction
	if len(transition.Effects) != 0 {
		t.Errorf("reject carries %d effects, want 0", len(transition.Effects))
	}
}

func TestBuildIndividualRequestMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		initial domainwf.State
		trigger domainwf.Trigger
		wantTo  domainwf.State
		wantErr bool
	}{
		{"approve from processing", domainwf.StateProcessing, domainwf.TriggerApprove, domainwf.StateApproved, false},
		{"reject from processing", domainwf.StateProcessing, domainwf.TriggerReject, domainwf.StateRejected, false},
		{"start progress from approved", domainwf.StateApproved, domainwf.TriggerStartProgress, domainwf.StateInProgress, false},
		{"complete from in_progress", domainwf.StateInProgress, domainwf.TriggerComplete, domainwf.StateCompleted, false},
		{"approve from approved", domainwf.StateApproved, domainwf.TriggerApprove, "", true},
		{"complete from approved", domainwf.StateApproved, domainwf.TriggerComplete, "", true},
		{"reject from completed", domainwf.StateCompleted, domainwf.TriggerReject, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := BuildIndividualRequestMachine(tt.initial)
			transition, err := machine.Fire(context.Background(), tt.trigger)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Fire() succeeded, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Fire() failed: %v", err)
			}
			if transition.To != tt.wantTo {
				t.Errorf("Fire() transitioned to %v, want %v", transition.To, tt.wantTo)
			}
		})
	}
}

func TestBuildIndividualRequestMachine_RejectFailsPayment(t *testing.T) {
	machine := BuildIndividualRequestMachine(domainwf.StateProcessing)

	transition, err := machine.Fire(context.Background(), domainwf.TriggerReject)
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	if len(transition.Effects) != 1 {
		t.Fatalf("reject carries %d effects, want 1", len(transition.Effects))
	}
	if _, ok := transition.Effects[0].(domainwf.FailPayment); !ok {
		t.Errorf("Effects[0] = %T, want FailPayment", transition.Effects[0])
	}
}

func TestBuildFinancialAidMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		initial domainwf.State
		trigger domainwf.Trigger
		wantTo  domainwf.State
		wantErr bool
	}{
		{"approve from pending", domainwf.StatePending, domainwf.TriggerApprove, domainwf.StateApproved, false},
		{"approve from under_review", domainwf.StateUnderReview, domainwf.TriggerApprove, domainwf.StateApproved, false},
		{"approve from requires_more_info", domainwf.StateRequiresMoreInfo, domainwf.TriggerApprove, domainwf.StateApproved, false},
		{"reject from pending", domainwf.StatePending, domainwf.TriggerReject, domainwf.StateRejected, false},
		{"reject from under_review", domainwf.StateUnderReview, domainwf.TriggerReject, domainwf.StateRejected, false},
		{"reject from requires_more_info", domainwf.StateRequiresMoreInfo, domainwf.TriggerReject, domainwf.StateRejected, false},
		{"request info from pending", domainwf.StatePending, domainwf.TriggerRequestInfo, domainwf.StateRequiresMoreInfo, false},
		{"request info from under_review", domainwf.StateUnderReview, domainwf.TriggerRequestInfo, domainwf.StateRequiresMoreInfo, false},
		{"request info from requires_more_info", domainwf.StateRequiresMoreInfo, domainwf.TriggerRequestInfo, "", true},
		{"approve from approved", domainwf.StateApproved, domainwf.TriggerApprove, "", true},
		{"reject from rejected", domainwf.StateRejected, domainwf.TriggerReject, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := BuildFinancialAidMachine(tt.initial)
			transition, err := machine.Fire(context.Background(), tt.trigger)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Fire() succeeded, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Fire() failed: %v", err)
			}
			if transition.To != tt.wantTo {
				t.Errorf("Fire() transitioned to %v, want %v", transition.To, tt.wantTo)
			}
		})
	}
}

func TestBuildFinancialAidMachine_ApproveAppliesDefaults(t *testing.T) {
	machine := BuildFinancialAidMachine(domainwf.StateUnderReview)

	transition, err := machine.Fire(context.Background(), domainwf.TriggerApprove)
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	if len(transition.Effects) != 1 {
		t.Fatalf("approve carries %d effects, want 1", len(transition.Effects))
	}
	if _, ok := transition.Effects[0].(domainwf.ApplyApprovalDefaults); !ok {
		t.Errorf("Effects[0] = %T, want ApplyApprovalDefaults", transition.Effects[0])
	}
}

func TestBuildFinancialAidMachine_RequestInfoSchedulesFollowUp(t *testing.T) {
	machine := BuildFinancialAidMachine(domainwf.StatePending)

	transition, err := machine.Fire(context.Background(), domainwf.TriggerRequestInfo)
	if err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	if len(transition.Effects) != 1 {
		t.Fatalf("request_info carries %d effects, want 1", len(transition.Effects))
	}
	if _, ok := transition.Effects[0].(domainwf.ScheduleFollowUp); !ok {
		t.Errorf("Effects[0] = %T, want ScheduleFollowUp", transition.Effects[0])
	}
}
