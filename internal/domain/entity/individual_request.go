package entity

import "time"

// IndividualServiceRequest represents a client's purchase of a single
// à-la-carte legal service, optionally assigned to a lawyer on approval
type IndividualServiceRequest struct {
	ID                   int64      `json:"id"`
	ClientID             int64      `json:"client_id"`
	IndividualServiceID  int64      `json:"individual_service_id"`
	AssignedLawyerID     *int64     `json:"assigned_lawyer_id,omitempty"`
	Status               string     `json:"status"`
	PaymentTransactionID *int64     `json:"payment_transaction_id,omitempty"`
	ApprovedBy           string     `json:"approved_by,omitempty"`
	RejectedBy           string     `json:"rejected_by,omitempty"`
	ApprovalNotes        string     `json:"approval_notes,omitempty"`
	RejectionReason      string     `json:"rejection_reason,omitempty"`
	ApprovedDate         *time.Time `json:"approved_date,omitempty"`
	RejectedDate         *time.Time `json:"rejected_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
