package entity

import "time"

// PaymentTransaction records the money side of a service purchase. Its
// lifecycle is driven entirely by request approval/rejection side effects.
type PaymentTransaction struct {
	ID                  int64     `json:"id"`
	ClientID            int64     `json:"client_id"`
	ServicePackageID    *int64    `json:"service_package_id,omitempty"`
	IndividualServiceID *int64    `json:"individual_service_id,omitempty"`
	Amount              int64     `json:"amount"`
	PaymentStatus       string    `json:"payment_status"`
	FailureReason       string    `json:"failure_reason,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
