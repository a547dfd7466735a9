package entity

import "time"

// FinancialAidRequest represents a client's application for subsidized legal
// services, reviewed and triaged by operators
type FinancialAidRequest struct {
	ID                 int64            `json:"id"`
	ClientID           int64            `json:"client_id"`
	RequestType        string           `json:"request_type"`
	RequestedAmount    int64            `json:"requested_amount"`
	DiscountPercentage float64          `json:"discount_percentage"`
	Priority           string           `json:"priority"`
	Status             string           `json:"status"`
	ReviewedBy         string           `json:"reviewed_by,omitempty"`
	ReviewDate         *time.Time       `json:"review_date,omitempty"`
	ReviewNotes        string           `json:"review_notes,omitempty"`
	ApprovalDetails    *ApprovalDetails `json:"approval_details,omitempty"`
	AdminResponse      *AdminResponse   `json:"admin_response,omitempty"`
	FollowUpRequired   bool             `json:"follow_up_required"`
	FollowUpDate       *time.Time       `json:"follow_up_date,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ApprovalDetails holds the terms granted when a financial aid request is approved
type ApprovalDetails struct {
	ApprovedAmount             int64     `json:"approved_amount"`
	ApprovedDiscountPercentage float64   `json:"approved_discount_percentage"`
	PaymentPlan                string    `json:"payment_plan,omitempty"`
	Conditions                 []string  `json:"conditions,omitempty"`
	ValidUntil                 time.Time `json:"valid_until"`
}

// AdminResponse holds the operator's message when more information is requested
type AdminResponse struct {
	Message           string   `json:"message"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
}
