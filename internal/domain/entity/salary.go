package entity

import "time"

// LawyerSalary is a compensation ledger entry recording a payment to a lawyer
// for a case. At most one entry exists per (lawyer, case) pair; the pair is
// backed by a storage-level uniqueness constraint.
type LawyerSalary struct {
	ID            int64      `json:"id"`
	LawyerID      int64      `json:"lawyer_id"`
	CaseID        int64      `json:"case_id"`
	Amount        int64      `json:"amount"`
	PaymentStatus string     `json:"payment_status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaidBy        string     `json:"paid_by,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
