package port

import (
	"context"
	"errors"
	"time"

	"github.com/lexserve/backoffice/internal/domain/entity"
)

// ErrDuplicateEntry is returned by constraint-checked inserts when the storage
// layer rejects a row that would violate a uniqueness constraint.
var ErrDuplicateEntry = errors.New("duplicate entry")

// ServiceRequestRepository defines persistence operations for ServiceRequest
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *entity.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*entity.ServiceRequest, error)

	// UpdateFrom persists the request's mutable fields guarded by the expected
	// source status. Returns false when the row no longer carries fromStatus,
	// which means a concurrent transition won the race.
	UpdateFrom(ctx context.Context, req *entity.ServiceRequest, fromStatus string) (bool, error)

	List(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.ServiceRequest, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// IndividualRequestRepository defines persistence operations for IndividualServiceRequest
type IndividualRequestRepository interface {
	Create(ctx context.Context, req *entity.IndividualServiceRequest) error
	GetByID(ctx context.Context, id int64) (*entity.IndividualServiceRequest, error)
	UpdateFrom(ctx context.Context, req *entity.IndividualServiceRequest, fromStatus string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.IndividualServiceRequest, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.IndividualServiceRequest, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// FinancialAidRepository defines persistence operations for FinancialAidRequest
type FinancialAidRepository interface {
	Create(ctx context.Context, req *entity.FinancialAidRequest) error
	GetByID(ctx context.Context, id int64) (*entity.FinancialAidRequest, error)
	UpdateFrom(ctx context.Context, req *entity.FinancialAidRequest, fromStatus string) (bool, error)

	// Update persists the request unconditionally. Used only by the
	// administrative status override, which deliberately skips the guarded path.
	Update(ctx context.Context, req *entity.FinancialAidRequest) error

	List(ctx context.Context, limit, offset int) ([]*entity.FinancialAidRequest, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	CountByPriority(ctx context.Context) (map[string]int, error)
	CountByType(ctx context.Context) (map[string]int, error)
}

// PaymentRepository defines persistence operations for PaymentTransaction
type PaymentRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	GetByID(ctx context.Context, id int64) (*entity.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, id int64, status, failureReason string) error
	SumCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumCompleted(ctx context.Context) (int64, error)
}

// SalaryRepository defines persistence operations for LawyerSalary ledger entries
type SalaryRepository interface {
	// Create inserts a ledger entry. Returns ErrDuplicateEntry when an entry
	// for the same (lawyer, case) pair already exists; the uniqueness is
	// enforced by the storage layer, not by a prior existence check.
	Create(ctx context.Context, salary *entity.LawyerSalary) error

	GetByLawyerAndCase(ctx context.Context, lawyerID, caseID int64) (*entity.LawyerSalary, error)
	ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.LawyerSalary, error)
}

// LawyerRepository defines read operations for Lawyer
type LawyerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Lawyer, error)
	List(ctx context.Context) ([]*entity.Lawyer, error)
}

// CaseRepository defines read operations for Case. Cases are owned by another
// system; this core never writes them.
type CaseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Case, error)
	ListByLawyerAndStatuses(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error)
	ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.Case, error)
}

// PackageRepository defines read operations for ServicePackage
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ServicePackage, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
