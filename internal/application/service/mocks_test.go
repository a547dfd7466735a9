package service

import (
	"context"
	"time"

	"github.com/lexserve/backoffice/internal/domain/entity"
)

// Mock repositories

type mockServiceRequestRepo struct {
	createFunc        func(ctx context.Context, req *entity.ServiceRequest) error
	getByIDFunc       func(ctx context.Context, id int64) (*entity.ServiceRequest, error)
	updateFromFunc    func(ctx context.Context, req *entity.ServiceRequest, fromStatus string) (bool, error)
	listFunc          func(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error)
	listByStatusFunc  func(ctx context.Context, status string, limit int) ([]*entity.ServiceRequest, error)
	countByStatusFunc func(ctx context.Context) (map[string]int, error)
}

func (m *mockServiceRequestRepo) Create(ctx context.Context, req *entity.ServiceRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	req.ID = 1
	return nil
}

func (m *mockServiceRequestRepo) GetByID(ctx context.Context, id int64) (*entity.ServiceRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.ServiceRequest{ID: id, Status: entity.StatusProcessing}, nil
}

func (m *mockServiceRequestRepo) UpdateFrom(ctx context.Context, req *entity.ServiceRequest, fromStatus string) (bool, error) {
	if m.updateFromFunc != nil {
		return m.updateFromFunc(ctx, req, fromStatus)
	}
	return true, nil
}

func (m *mockServiceRequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return []*entity.ServiceRequest{}, nil
}

func (m *mockServiceRequestRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.ServiceRequest, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, limit)
	}
	return []*entity.ServiceRequest{}, nil
}

func (m *mockServiceRequestRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[string]int{}, nil
}

type mockIndividualRequestRepo struct {
	createFunc        func(ctx context.Context, req *entity.IndividualServiceRequest) error
	getByIDFunc       func(ctx context.Context, id int64) (*entity.IndividualServiceRequest, error)
	updateFromFunc    func(ctx context.Context, req *entity.IndividualServiceRequest, fromStatus string) (bool, error)
	listFunc          func(ctx context.Context, limit, offset int) ([]*entity.IndividualServiceRequest, error)
	listByStatusFunc  func(ctx context.Context, status string, limit int) ([]*entity.IndividualServiceRequest, error)
	countByStatusFunc func(ctx context.Context) (map[string]int, error)
}

func (m *mockIndividualRequestRepo) Create(ctx context.Context, req *entity.IndividualServiceRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	req.ID = 1
	return nil
}

func (m *mockIndividualRequestRepo) GetByID(ctx context.Context, id int64) (*entity.IndividualServiceRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.IndividualServiceRequest{ID: id, Status: entity.StatusProcessing}, nil
}

func (m *mockIndividualRequestRepo) UpdateFrom(ctx context.Context, req *entity.IndividualServiceRequest, fromStatus string) (bool, error) {
	if m.updateFromFunc != nil {
		return m.updateFromFunc(ctx, req, fromStatus)
	}
	return true, nil
}

func (m *mockIndividualRequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.IndividualServiceRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return []*entity.IndividualServiceRequest{}, nil
}

func (m *mockIndividualRequestRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.IndividualServiceRequest, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, limit)
	}
	return []*entity.IndividualServiceRequest{}, nil
}

func (m *mockIndividualRequestRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[string]int{}, nil
}

type mockFinancialAidRepo struct {
	createFunc          func(ctx context.Context, req *entity.FinancialAidRequest) error
	getByIDFunc         func(ctx context.Context, id int64) (*entity.FinancialAidRequest, error)
	updateFromFunc      func(ctx context.Context, req *entity.FinancialAidRequest, fromStatus string) (bool, error)
	updateFunc          func(ctx context.Context, req *entity.FinancialAidRequest) error
	listFunc            func(ctx context.Context, limit, offset int) ([]*entity.FinancialAidRequest, error)
	countByStatusFunc   func(ctx context.Context) (map[string]int, error)
	countByPriorityFunc func(ctx context.Context) (map[string]int, error)
	countByTypeFunc     func(ctx context.Context) (map[string]int, error)
}

func (m *mockFinancialAidRepo) Create(ctx context.Context, req *entity.FinancialAidRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	req.ID = 1
	return nil
}

func (m *mockFinancialAidRepo) GetByID(ctx context.Context, id int64) (*entity.FinancialAidRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.FinancialAidRequest{ID: id, Status: entity.StatusPending}, nil
}

func (m *mockFinancialAidRepo) UpdateFrom(ctx context.Context, req *entity.FinancialAidRequest, fromStatus string) (bool, error) {
	if m.updateFromFunc != nil {
		return m.updateFromFunc(ctx, req, fromStatus)
	}
	return true, nil
}

func (m *mockFinancialAidRepo) Update(ctx context.Context, req *entity.FinancialAidRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil
}

func (m *mockFinancialAidRepo) List(ctx context.Context, limit, offset int) ([]*entity.FinancialAidRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return []*entity.FinancialAidRequest{}, nil
}

func (m *mockFinancialAidRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[string]int{}, nil
}

func (m *mockFinancialAidRepo) CountByPriority(ctx context.Context) (map[string]int, error) {
	if m.countByPriorityFunc != nil {
		return m.countByPriorityFunc(ctx)
	}
	return map[string]int{}, nil
}

func (m *mockFinancialAidRepo) CountByType(ctx context.Context) (map[string]int, error) {
	if m.countByTypeFunc != nil {
		return m.countByTypeFunc(ctx)
	}
	return map[string]int{}, nil
}

type mockPaymentRepo struct {
	createFunc              func(ctx context.Context, tx *entity.PaymentTransaction) error
	getByIDFunc             func(ctx context.Context, id int64) (*entity.PaymentTransaction, error)
	updateStatusFunc        func(ctx context.Context, id int64, status, failureReason string) error
	sumCompletedBetweenFunc func(ctx context.Context, from, to time.Time) (int64, error)
	sumCompletedFunc        func(ctx context.Context) (int64, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tx)
	}
	tx.ID = 1
	return nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentTransaction, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.PaymentTransaction{ID: id, PaymentStatus: entity.PaymentStatusPending}, nil
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id int64, status, failureReason string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, failureReason)
	}
	return nil
}

func (m *mockPaymentRepo) SumCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.sumCompletedBetweenFunc != nil {
		return m.sumCompletedBetweenFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockPaymentRepo) SumCompleted(ctx context.Context) (int64, error) {
	if m.sumCompletedFunc != nil {
		return m.sumCompletedFunc(ctx)
	}
	return 0, nil
}

type mockSalaryRepo struct {
	createFunc             func(ctx context.Context, salary *entity.LawyerSalary) error
	getByLawyerAndCaseFunc func(ctx context.Context, lawyerID, caseID int64) (*entity.LawyerSalary, error)
	listByLawyerFunc       func(ctx context.Context, lawyerID int64) ([]*entity.LawyerSalary, error)
}

func (m *mockSalaryRepo) Create(ctx context.Context, salary *entity.LawyerSalary) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, salary)
	}
	salary.ID = 1
	return nil
}

func (m *mockSalaryRepo) GetByLawyerAndCase(ctx context.Context, lawyerID, caseID int64) (*entity.LawyerSalary, error) {
	if m.getByLawyerAndCaseFunc != nil {
		return m.getByLawyerAndCaseFunc(ctx, lawyerID, caseID)
	}
	return nil, nil
}

func (m *mockSalaryRepo) ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.LawyerSalary, error) {
	if m.listByLawyerFunc != nil {
		return m.listByLawyerFunc(ctx, lawyerID)
	}
	return []*entity.LawyerSalary{}, nil
}

type mockLawyerRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.Lawyer, error)
	listFunc    func(ctx context.Context) ([]*entity.Lawyer, error)
}

func (m *mockLawyerRepo) GetByID(ctx context.Context, id int64) (*entity.Lawyer, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Lawyer{ID: id, Name: "Test Lawyer"}, nil
}

func (m *mockLawyerRepo) List(ctx context.Context) ([]*entity.Lawyer, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*entity.Lawyer{}, nil
}

type mockCaseRepo struct {
	getByIDFunc                 func(ctx context.Context, id int64) (*entity.Case, error)
	listByLawyerAndStatusesFunc func(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error)
	listByLawyerFunc            func(ctx context.Context, lawyerID int64) ([]*entity.Case, error)
}

func (m *mockCaseRepo) GetByID(ctx context.Context, id int64) (*entity.Case, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Case{ID: id, Status: "filed"}, nil
}

func (m *mockCaseRepo) ListByLawyerAndStatuses(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error) {
	if m.listByLawyerAndStatusesFunc != nil {
		return m.listByLawyerAndStatusesFunc(ctx, lawyerID, statuses)
	}
	return []*entity.Case{}, nil
}

func (m *mockCaseRepo) ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.Case, error) {
	if m.listByLawyerFunc != nil {
		return m.listByLawyerFunc(ctx, lawyerID)
	}
	return []*entity.Case{}, nil
}

type mockPackageRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.ServicePackage, error)
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id int64) (*entity.ServicePackage, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.ServicePackage{ID: id, Duration: entity.DurationMonthly}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockActivityLogger struct {
	entries []*entity.ActivityEntry
}

func (m *mockActivityLogger) Record(ctx context.Context, entry *entity.ActivityEntry) {
	m.entries = append(m.entries, entry)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
