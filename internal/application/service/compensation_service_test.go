package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
)

type compensationMocks struct {
	lawyerRepo *mockLawyerRepo
	caseRepo   *mockCaseRepo
	salaryRepo *mockSalaryRepo
	activity   *mockActivityLogger
}

func defaultCompensationMocks() *compensationMocks {
	return &compensationMocks{
		lawyerRepo: &mockLawyerRepo{},
		caseRepo:   &mockCaseRepo{},
		salaryRepo: &mockSalaryRepo{},
		activity:   &mockActivityLogger{},
	}
}

func newCompensationService(m *compensationMocks) CompensationService {
	return NewCompensationService(
		m.lawyerRepo,
		m.caseRepo,
		m.salaryRepo,
		m.activity,
		&mockLogger{},
		DefaultCompensationConfig(),
		WithCompensationClock(func() time.Time { return testNow }),
	)
}

func TestCompensationService_ComputeLedger(t *testing.T) {
	m := defaultCompensationMocks()
	m.lawyerRepo.listFunc = func(ctx context.Context) ([]*entity.Lawyer, error) {
		return []*entity.Lawyer{
			{ID: 1, Name: "Adams"},
			{ID: 2, Name: "Baker"},
		}, nil
	}
	m.caseRepo.listByLawyerAndStatusesFunc = func(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error) {
		switch lawyerID {
		case 1:
			return []*entity.Case{{ID: 10, Status: "filed"}}, nil
		default:
			return []*entity.Case{
				{ID: 20, Status: "filed"},
				{ID: 21, Status: "completed"},
				{ID: 22, Status: "hearing_scheduled"},
			}, nil
		}
	}
	m.salaryRepo.getByLawyerAndCaseFunc = func(ctx context.Context, lawyerID, caseID int64) (*entity.LawyerSalary, error) {
		if lawyerID == 2 && caseID == 21 {
			return &entity.LawyerSalary{ID: 5, LawyerID: 2, CaseID: 21, Amount: 3000}, nil
		}
		return nil, nil
	}

	svc := newCompensationService(m)
	ledgers, err := svc.ComputeLedger(context.Background())
	if err != nil {
		t.Fatalf("ComputeLedger() failed: %v", err)
	}

	if len(ledgers) != 2 {
		t.Fatalf("ledger count = %d, want 2", len(ledgers))
	}

	// Baker owes more unpaid (2 x 2500 vs 1 x 2500) and must sort first
	if ledgers[0].Lawyer.ID != 2 {
		t.Errorf("first ledger lawyer = %d, want 2", ledgers[0].Lawyer.ID)
	}
	if ledgers[0].TotalCases != 3 || ledgers[0].TotalUnpaidCases != 2 {
		t.Errorf("Baker totals = (%d cases, %d unpaid), want (3, 2)",
			ledgers[0].TotalCases, ledgers[0].TotalUnpaidCases)
	}
	if ledgers[0].TotalUnpaidAmount != 5000 {
		t.Errorf("Baker unpaid amount = %d, want 5000", ledgers[0].TotalUnpaidAmount)
	}

	// The paid case shows the recorded amount, not the per-case rate
	var paidLine *LedgerCase
	for i := range ledgers[0].Cases {
		if ledgers[0].Cases[i].Case.ID == 21 {
			paidLine = &ledgers[0].Cases[i]
		}
	}
	if paidLine == nil || !paidLine.Paid || paidLine.Amount != 3000 {
		t.Errorf("paid line = %+v, want paid with amount 3000", paidLine)
	}

	if ledgers[1].Lawyer.ID != 1 || ledgers[1].TotalUnpaidAmount != 2500 {
		t.Errorf("Adams ledger = %+v, want unpaid 2500", ledgers[1])
	}
}

func TestCompensationService_ComputeLedger_FallbackToAllCases(t *testing.T) {
	m := defaultCompensationMocks()

	var fellBack bool
	m.lawyerRepo.listFunc = func(ctx context.Context) ([]*entity.Lawyer, error) {
		return []*entity.Lawyer{{ID: 1, Name: "Adams"}}, nil
	}
	m.caseRepo.listByLawyerAndStatusesFunc = func(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error) {
		return []*entity.Case{}, nil
	}
	m.caseRepo.listByLawyerFunc = func(ctx context.Context, lawyerID int64) ([]*entity.Case, error) {
		fellBack = true
		return []*entity.Case{{ID: 30, Status: "draft"}}, nil
	}

	svc := newCompensationService(m)
	ledgers, err := svc.ComputeLedger(context.Background())
	if err != nil {
		t.Fatalf("ComputeLedger() failed: %v", err)
	}

	if !fellBack {
		t.Error("expected fallback to all cases")
	}
	if ledgers[0].TotalCases != 1 || ledgers[0].TotalUnpaidAmount != 2500 {
		t.Errorf("fallback ledger = %+v, want 1 case unpaid 2500", ledgers[0])
	}
}

func TestCompensationService_ComputeLedger_StableTieOrder(t *testing.T) {
	m := defaultCompensationMocks()
	m.lawyerRepo.listFunc = func(ctx context.Context) ([]*entity.Lawyer, error) {
		return []*entity.Lawyer{
			{ID: 1, Name: "Adams"},
			{ID: 2, Name: "Baker"},
			{ID: 3, Name: "Clark"},
		}, nil
	}
	m.caseRepo.listByLawyerAndStatusesFunc = func(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error) {
		return []*entity.Case{{ID: lawyerID * 10, Status: "filed"}}, nil
	}

	svc := newCompensationService(m)
	ledgers, err := svc.ComputeLedger(context.Background())
	if err != nil {
		t.Fatalf("ComputeLedger() failed: %v", err)
	}

	for i, wantID := range []int64{1, 2, 3} {
		if ledgers[i].Lawyer.ID != wantID {
			t.Errorf("ledgers[%d].Lawyer.ID = %d, want %d (ties keep input order)", i, ledgers[i].Lawyer.ID, wantID)
		}
	}
}

func TestCompensationService_PayLawyer(t *testing.T) {
	m := defaultCompensationMocks()

	var created *entity.LawyerSalary
	m.salaryRepo.createFunc = func(ctx context.Context, salary *entity.LawyerSalary) error {
		salary.ID = 7
		created = salary
		return nil
	}

	svc := newCompensationService(m)
	salary, err := svc.PayLawyer(context.Background(), testActor, 1, 10, 2500)
	if err != nil {
		t.Fatalf("PayLawyer() failed: %v", err)
	}

	if created == nil {
		t.Fatal("salary entry was not created")
	}
	if salary.LawyerID != 1 || salary.CaseID != 10 || salary.Amount != 2500 {
		t.Errorf("salary = %+v, want lawyer 1, case 10, amount 2500", salary)
	}
	if salary.PaymentStatus != entity.SalaryStatusPaid {
		t.Errorf("payment status = %v, want %v", salary.PaymentStatus, entity.SalaryStatusPaid)
	}
	if salary.PaidBy != "admin-1" {
		t.Errorf("paid_by = %v, want admin-1", salary.PaidBy)
	}
	if !strings.HasPrefix(salary.TransactionID, "SAL-20250315103000-") {
		t.Errorf("transaction id = %v, want SAL-<timestamp>-<suffix>", salary.TransactionID)
	}
}

func TestCompensationService_PayLawyer_Duplicate(t *testing.T) {
	m := defaultCompensationMocks()
	m.salaryRepo.createFunc = func(ctx context.Context, salary *entity.LawyerSalary) error {
		return port.ErrDuplicateEntry
	}

	svc := newCompensationService(m)
	_, err := svc.PayLawyer(context.Background(), testActor, 1, 10, 2500)
	if err == nil {
		t.Fatal("duplicate payment should fail")
	}
	if kind, _ := KindOf(err); kind != KindDuplicatePayment {
		t.Errorf("error kind = %v, want %v", kind, KindDuplicatePayment)
	}
}

func TestCompensationService_PayLawyer_InvalidAmount(t *testing.T) {
	m := defaultCompensationMocks()

	svc := newCompensationService(m)
	for _, amount := range []int64{0, -100} {
		_, err := svc.PayLawyer(context.Background(), testActor, 1, 10, amount)
		if err == nil {
			t.Fatalf("amount %d should fail", amount)
		}
		if kind, _ := KindOf(err); kind != KindMissingField {
			t.Errorf("error kind for amount %d = %v, want %v", amount, kind, KindMissingField)
		}
	}
}

func TestCompensationService_PayLawyer_UnknownLawyer(t *testing.T) {
	m := defaultCompensationMocks()
	m.lawyerRepo.getByIDFunc = func(ctx context.Context, id int64) (*entity.Lawyer, error) {
		return nil, nil
	}

	svc := newCompensationService(m)
	_, err := svc.PayLawyer(context.Background(), testActor, 99, 10, 2500)
	if err == nil {
		t.Fatal("payment to unknown lawyer should fail")
	}
	if kind, _ := KindOf(err); kind != KindNotFound {
		t.Errorf("error kind = %v, want %v", kind, KindNotFound)
	}
}

func TestCompensationService_PayLawyer_UnknownCase(t *testing.T) {
	m := defaultCompensationMocks()
	m.caseRepo.getByIDFunc = func(ctx context.Context, id int64) (*entity.Case, error) {
		return nil, nil
	}

	svc := newCompensationService(m)
	_, err := svc.PayLawyer(context.Background(), testActor, 1, 99, 2500)
	if err == nil {
		t.Fatal("payment against unknown case should fail")
	}
	if kind, _ := KindOf(err); kind != KindNotFound {
		t.Errorf("error kind = %v, want %v", kind, KindNotFound)
	}
}

func TestNewSalaryTransactionID(t *testing.T) {
	id := NewSalaryTransactionID(testNow)

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("transaction id = %v, want three dash-separated parts", id)
	}
	if parts[0] != "SAL" {
		t.Errorf("prefix = %v, want SAL", parts[0])
	}
	if parts[1] != "20250315103000" {
		t.Errorf("timestamp = %v, want 20250315103000", parts[1])
	}
	if len(parts[2]) != 8 || parts[2] != strings.ToUpper(parts[2]) {
		t.Errorf("suffix = %v, want 8 uppercase hex characters", parts[2])
	}

	if other := NewSalaryTransactionID(testNow); other == id {
		t.Error("two generated ids should differ in their random suffix")
	}
}
