package entity

import "time"

// ServiceRequest represents a client's purchase of a fixed service package
type ServiceRequest struct {
	ID                   int64      `json:"id"`
	ClientID             int64      `json:"client_id"`
	PackageID            int64      `json:"package_id"`
	Status               string     `json:"status"`
	PaymentTransactionID *int64     `json:"payment_transaction_id,omitempty"`
	ApprovedBy           string     `json:"approved_by,omitempty"`
	RejectedBy           string     `json:"rejected_by,omitempty"`
	ApprovalNotes        string     `json:"approval_notes,omitempty"`
	RejectionReason      string     `json:"rejection_reason,omitempty"`
	ApprovedDate         *time.Time `json:"approved_date,omitempty"`
	RejectedDate         *time.Time `json:"rejected_date,omitempty"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ServicePackage represents a purchasable fixed package of legal services
type ServicePackage struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration string `json:"duration"` // monthly or yearly
}
