package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
)

// CompensationConfig holds compensation policy knobs
type CompensationConfig struct {
	// PerCaseRate is the flat amount owed per unpaid compensable case
	PerCaseRate int64

	// FallbackAllCases controls the degradation path: when a lawyer has no
	// cases in a compensable status, fall back to all of their cases instead
	// of reporting zero
	FallbackAllCases bool
}

// DefaultCompensationConfig returns the production compensation policy
func DefaultCompensationConfig() CompensationConfig {
	return CompensationConfig{
		PerCaseRate:      2500,
		FallbackAllCases: true,
	}
}

// LedgerCase is one case line in a lawyer's compensation ledger
type LedgerCase struct {
	Case   *entity.Case `json:"case"`
	Paid   bool         `json:"paid"`
	Amount int64        `json:"amount"`
}

// LawyerLedger aggregates what a lawyer is owed across their cases
type LawyerLedger struct {
	Lawyer            *entity.Lawyer `json:"lawyer"`
	Cases             []LedgerCase   `json:"cases"`
	TotalCases        int            `json:"total_cases"`
	TotalUnpaidCases  int            `json:"total_unpaid_cases"`
	TotalUnpaidAmount int64          `json:"total_unpaid_amount"`
}

// CompensationService derives per-lawyer compensation obligations and records
// salary payments. It never double-counts a previously paid case.
type CompensationService interface {
	ComputeLedger(ctx context.Context) ([]*LawyerLedger, error)
	PayLawyer(ctx context.Context, actor port.Actor, lawyerID, caseID, amount int64) (*entity.LawyerSalary, error)
}

type compensationServiceImpl struct {
	lawyerRepo port.LawyerRepository
	caseRepo   port.CaseRepository
	salaryRepo port.SalaryRepository
	activity   port.ActivityLogger
	logger     Logger
	cfg        CompensationConfig
	now        func() time.Time
}

// CompensationOption configures the compensation service
type CompensationOption func(*compensationServiceImpl)

// WithCompensationClock overrides the time source, primarily for tests
func WithCompensationClock(now func() time.Time) CompensationOption {
	return func(s *compensationServiceImpl) {
		s.now = now
	}
}

// NewCompensationService creates a new CompensationService
func NewCompensationService(
	lawyerRepo port.LawyerRepository,
	caseRepo port.CaseRepository,
	salaryRepo port.SalaryRepository,
	activity port.ActivityLogger,
	logger Logger,
	cfg CompensationConfig,
	opts ...CompensationOption,
) CompensationService {
	s := &compensationServiceImpl{
		lawyerRepo: lawyerRepo,
		caseRepo:   caseRepo,
		salaryRepo: salaryRepo,
		activity:   activity,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ComputeLedger builds the per-lawyer compensation ledger, sorted descending
// by unpaid amount (ties keep lawyer input order)
func (s *compensationServiceImpl) ComputeLedger(ctx context.Context) ([]*LawyerLedger, error) {
	lawyers, err := s.lawyerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}

	ledgers := make([]*LawyerLedger, 0, len(lawyers))
	for _, lawyer := range lawyers {
		ledger, err := s.ledgerFor(ctx, lawyer)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	sort.SliceStable(ledgers, func(i, j int) bool {
		return ledgers[i].TotalUnpaidAmount > ledgers[j].TotalUnpaidAmount
	})

	return ledgers, nil
}

func (s *compensationServiceImpl) ledgerFor(ctx context.Context, lawyer *entity.Lawyer) (*LawyerLedger, error) {
	cases, err := s.caseRepo.ListByLawyerAndStatuses(ctx, lawyer.ID, entity.CompensableCaseStatuses)
	if err != nil {
		return nil, fmt.Errorf("list cases for lawyer %d: %w", lawyer.ID, err)
	}

	if len(cases) == 0 && s.cfg.FallbackAllCases {
		// Degradation path: status data can be inconsistent; owing nothing is
		// worse than owing against all cases, so fall back and say so.
		cases, err = s.caseRepo.ListByLawyer(ctx, lawyer.ID)
		if err != nil {
			return nil, fmt.Errorf("list all cases for lawyer %d: %w", lawyer.ID, err)
		}
		if len(cases) > 0 {
			s.logger.Warn("No compensable-status cases, falling back to all cases",
				"lawyer_id", lawyer.ID, "case_count", len(cases))
		}
	}

	ledger := &LawyerLedger{
		Lawyer:     lawyer,
		Cases:      make([]LedgerCase, 0, len(cases)),
		TotalCases: len(cases),
	}

	for _, c := range cases {
		existing, err := s.salaryRepo.GetByLawyerAndCase(ctx, lawyer.ID, c.ID)
		if err != nil {
			return nil, fmt.Errorf("lookup salary for lawyer %d case %d: %w", lawyer.ID, c.ID, err)
		}

		line := LedgerCase{Case: c}
		if existing != nil {
			line.Paid = true
			line.Amount = existing.Amount
		} else {
			line.Amount = s.cfg.PerCaseRate
			ledger.TotalUnpaidCases++
			ledger.TotalUnpaidAmount += line.Amount
		}
		ledger.Cases = append(ledger.Cases, line)
	}

	return ledger, nil
}

// PayLawyer records a salary payment for a (lawyer, case) pair. The pair's
// uniqueness is enforced by the storage layer; a duplicate surfaces as
// DuplicatePayment and creates no entry.
func (s *compensationServiceImpl) PayLawyer(ctx context.Context, actor port.Actor, lawyerID, caseID, amount int64) (*entity.LawyerSalary, error) {
	if amount <= 0 {
		return nil, MissingFieldError("amount")
	}

	lawyer, err := s.lawyerRepo.GetByID(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("resolve lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, NotFoundError("lawyer", lawyerID)
	}

	caseRecord, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("resolve case: %w", err)
	}
	if caseRecord == nil {
		return nil, NotFoundError("case", caseID)
	}

	now := s.now()
	salary := &entity.LawyerSalary{
		LawyerID:      lawyerID,
		CaseID:        caseID,
		Amount:        amount,
		PaymentStatus: entity.SalaryStatusPaid,
		PaidAt:        &now,
		PaidBy:        actor.ID,
		TransactionID: NewSalaryTransactionID(now),
		CreatedAt:     now,
	}

	if err := s.salaryRepo.Create(ctx, salary); err != nil {
		if errors.Is(err, port.ErrDuplicateEntry) {
			return nil, DuplicatePaymentError(lawyerID, caseID)
		}
		return nil, fmt.Errorf("create salary entry: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, &entity.ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "pay_lawyer",
			EntityKind: "lawyer_salary",
			EntityID:   salary.ID,
			Detail:     salary.TransactionID,
			CreatedAt:  now,
		})
	}

	s.logger.Info("Lawyer paid for case",
		"lawyer_id", lawyerID, "case_id", caseID, "amount", amount,
		"transaction_id", salary.TransactionID)
	return salary, nil
}

// NewSalaryTransactionID generates a salary transaction identifier with a
// sortable time prefix and a random suffix. Global uniqueness is backed by
// the UNIQUE column constraint, not by the suffix entropy.
func NewSalaryTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SAL-%s-%s", now.UTC().Format("20060102150405"), suffix)
}
