package entity

// Status constants for service and individual service requests
const (
	StatusProcessing = "processing"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusActive     = "active"
	StatusExpired    = "expired"
)

// Status constants for financial aid requests
const (
	StatusPending          = "pending"
	StatusUnderReview      = "under_review"
	StatusRequiresMoreInfo = "requires_more_info"
)

// Payment transaction status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Lawyer salary payment status constants
const (
	SalaryStatusUnpaid     = "unpaid"
	SalaryStatusProcessing = "processing"
	SalaryStatusPaid       = "paid"
)

// Financial aid priorities
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Financial aid request types
const (
	AidTypeMonthlyPackage    = "monthly_package"
	AidTypeIndividualService = "individual_service"
	AidTypeCaseFiling        = "case_filing"
)

// Service package durations
const (
	DurationMonthly = "monthly"
	DurationYearly  = "yearly"
)

// Case statuses that entitle the assigned lawyer to compensation
var CompensableCaseStatuses = []string{
	"lawyer_assigned",
	"filed",
	"scheduling_requested",
	"hearing_scheduled",
	"rescheduled",
	"completed",
}

var priorityRanks = map[string]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 3,
	PriorityLow:    4,
}

// PriorityRank returns the triage ordering rank of a priority; urgent sorts
// first. Unknown priorities sort last.
func PriorityRank(priority string) int {
	if rank, ok := priorityRanks[priority]; ok {
		return rank
	}
	return len(priorityRanks) + 1
}

var validAidStatuses = map[string]bool{
	StatusPending:          true,
	StatusUnderReview:      true,
	StatusApproved:         true,
	StatusRejected:         true,
	StatusRequiresMoreInfo: true,
}

// IsValidAidStatus reports whether s is one of the five financial aid statuses.
func IsValidAidStatus(s string) bool {
	return validAidStatuses[s]
}
