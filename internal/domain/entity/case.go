package entity

import "time"

// Case is a legal case handled by the platform. Read-only here: case
// lifecycle is owned elsewhere, this core only derives compensation from it.
type Case struct {
	ID              int64     `json:"id"`
	CaseNumber      string    `json:"case_number"`
	Status          string    `json:"status"`
	CurrentLawyerID *int64    `json:"current_lawyer_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Lawyer is a platform lawyer eligible for case compensation
type Lawyer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
