package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
)

// ReportConfig holds read-side reporting knobs
type ReportConfig struct {
	// RecentPageSize bounds the recent-processing dashboard view
	RecentPageSize int
}

// DefaultReportConfig returns the production reporting configuration
func DefaultReportConfig() ReportConfig {
	return ReportConfig{RecentPageSize: 10}
}

// DashboardStats is the read-side projection backing the admin dashboard
type DashboardStats struct {
	TotalRevenue               int64          `json:"total_revenue"`
	MonthRevenue               int64          `json:"month_revenue"`
	LastMonthRevenue           int64          `json:"last_month_revenue"`
	RevenueGrowth              float64        `json:"revenue_growth"`
	ServiceRequestsByStatus    map[string]int `json:"service_requests_by_status"`
	IndividualRequestsByStatus map[string]int `json:"individual_requests_by_status"`
	AidByStatus                map[string]int `json:"aid_by_status"`
	AidByPriority              map[string]int `json:"aid_by_priority"`
	AidByType                  map[string]int `json:"aid_by_type"`

	RecentServiceRequests    []*entity.ServiceRequest           `json:"recent_service_requests"`
	RecentIndividualRequests []*entity.IndividualServiceRequest `json:"recent_individual_requests"`
}

// ReportService computes dashboard and report statistics. Read-only: it never
// mutates request status. Every statistic is deterministic given an entity
// snapshot and a reference now.
type ReportService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	AidQueue(ctx context.Context) ([]*entity.FinancialAidRequest, error)
}

type reportServiceImpl struct {
	serviceReqRepo port.ServiceRequestRepository
	individualRepo port.IndividualRequestRepository
	aidRepo        port.FinancialAidRepository
	paymentRepo    port.PaymentRepository
	logger         Logger
	cfg            ReportConfig
	now            func() time.Time
}

// ReportOption configures the report service
type ReportOption func(*reportServiceImpl)

// WithReportClock overrides the time source, primarily for tests
func WithReportClock(now func() time.Time) ReportOption {
	return func(s *reportServiceImpl) {
		s.now = now
	}
}

// NewReportService creates a new ReportService
func NewReportService(
	serviceReqRepo port.ServiceRequestRepository,
	individualRepo port.IndividualRequestRepository,
	aidRepo port.FinancialAidRepository,
	paymentRepo port.PaymentRepository,
	logger Logger,
	cfg ReportConfig,
	opts ...ReportOption,
) ReportService {
	s := &reportServiceImpl{
		serviceReqRepo: serviceReqRepo,
		individualRepo: individualRepo,
		aidRepo:        aidRepo,
		paymentRepo:    paymentRepo,
		logger:         logger,
		cfg:            cfg,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DashboardStats assembles revenue totals, month-over-month growth, and
// status/priority/type count projections
func (s *reportServiceImpl) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	total, err := s.paymentRepo.SumCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum completed payments: %w", err)
	}

	thisMonth, err := s.paymentRepo.SumCompletedBetween(ctx, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("sum this month's payments: %w", err)
	}

	lastMonth, err := s.paymentRepo.SumCompletedBetween(ctx, lastMonthStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("sum last month's payments: %w", err)
	}

	serviceCounts, err := s.serviceReqRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count service requests: %w", err)
	}

	individualCounts, err := s.individualRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count individual requests: %w", err)
	}

	aidByStatus, err := s.aidRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count aid by status: %w", err)
	}

	aidByPriority, err := s.aidRepo.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("count aid by priority: %w", err)
	}

	aidByType, err := s.aidRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count aid by type: %w", err)
	}

	recentService, err := s.serviceReqRepo.ListByStatus(ctx, entity.StatusProcessing, s.cfg.RecentPageSize)
	if err != nil {
		return nil, fmt.Errorf("list recent service requests: %w", err)
	}

	recentIndividual, err := s.individualRepo.ListByStatus(ctx, entity.StatusProcessing, s.cfg.RecentPageSize)
	if err != nil {
		return nil, fmt.Errorf("list recent individual requests: %w", err)
	}

	return &DashboardStats{
		TotalRevenue:               total,
		MonthRevenue:               thisMonth,
		LastMonthRevenue:           lastMonth,
		RevenueGrowth:              RevenueGrowth(lastMonth, thisMonth),
		ServiceRequestsByStatus:    serviceCounts,
		IndividualRequestsByStatus: individualCounts,
		AidByStatus:                aidByStatus,
		AidByPriority:              aidByPriority,
		AidByType:                  aidByType,
		RecentServiceRequests:      recentService,
		RecentIndividualRequests:   recentIndividual,
	}, nil
}

// AidQueue returns the operator triage queue: urgent first, oldest first
// within a priority tier
func (s *reportServiceImpl) AidQueue(ctx context.Context) ([]*entity.FinancialAidRequest, error) {
	requests, err := s.aidRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list financial aid requests: %w", err)
	}

	SortAidQueue(requests)
	return requests, nil
}

// RevenueGrowth computes month-over-month revenue growth in percent. Growth
// is 0 when the prior month's revenue is 0.
func RevenueGrowth(lastMonth, thisMonth int64) float64 {
	if lastMonth == 0 {
		return 0
	}
	return float64(thisMonth-lastMonth) / float64(lastMonth) * 100
}

// SortAidQueue orders requests in place for operator triage: priority
// ascending (urgent-coded lowest first), then submission order within a tier
// so the oldest waiting request of a tier is handled first
func SortAidQueue(requests []*entity.FinancialAidRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		ri, rj := entity.PriorityRank(requests[i].Priority), entity.PriorityRank(requests[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
}
