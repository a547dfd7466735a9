package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lexserve/backoffice/internal/application/port"
	appwf "github.com/lexserve/backoffice/internal/application/workflow"
	"github.com/lexserve/backoffice/internal/domain/entity"
	domainwf "github.com/lexserve/backoffice/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SettlementConfig holds settlement policy knobs
type SettlementConfig struct {
	// AidValidityDays is the default validity window for approved financial
	// aid when the caller does not supply validUntil
	AidValidityDays int

	// FollowUpDays is the follow-up window set when more info is requested
	FollowUpDays int
}

// DefaultSettlementConfig returns the production settlement policy
func DefaultSettlementConfig() SettlementConfig {
	return SettlementConfig{
		AidValidityDays: 30,
		FollowUpDays:    7,
	}
}

// AidApproval carries the optional approval terms for a financial aid
// request. Unset fields are defaulted from the request itself.
type AidApproval struct {
	ApprovedAmount             *int64
	ApprovedDiscountPercentage *float64
	PaymentPlan                string
	Conditions                 []string
	ValidUntil                 *time.Time
	Notes                      string
}

// ServiceRequestOutcome is the result of settling a package service request.
// PaymentSyncFailed is set when the linked payment transaction could not be
// updated; the status mutation stands regardless.
type ServiceRequestOutcome struct {
	Request           *entity.ServiceRequest
	PaymentSynced     bool
	PaymentSyncFailed bool
}

// IndividualRequestOutcome is the result of settling an individual service request
type IndividualRequestOutcome struct {
	Request           *entity.IndividualServiceRequest
	PaymentSynced     bool
	PaymentSyncFailed bool
}

// SettlementService executes one status transition end-to-end with its side
// effects: it consults the state machines for legality, mutates the request
// under a compare-and-swap on the source status, and synchronizes the linked
// payment transaction best-effort.
type SettlementService interface {
	ApproveServiceRequest(ctx context.Context, actor port.Actor, id int64, notes string) (*ServiceRequestOutcome, error)
	RejectServiceRequest(ctx context.Context, actor port.Actor, id int64, reason string) (*ServiceRequestOutcome, error)

	ApproveIndividualRequest(ctx context.Context, actor port.Actor, id int64, notes string, assignedLawyerID *int64) (*IndividualRequestOutcome, error)
	RejectIndividualRequest(ctx context.Context, actor port.Actor, id int64, reason string) (*IndividualRequestOutcome, error)

	ApproveFinancialAid(ctx context.Context, actor port.Actor, id int64, approval AidApproval) (*entity.FinancialAidRequest, error)
	RejectFinancialAid(ctx context.Context, actor port.Actor, id int64, reason string) (*entity.FinancialAidRequest, error)
	RequestMoreInfo(ctx context.Context, actor port.Actor, id int64, message string, requiredDocuments []string) (*entity.FinancialAidRequest, error)

	// OverrideAidStatus reassigns a financial aid status without consulting
	// the state machine and without any payment synchronization. This is an
	// administrative escape hatch kept separate from the guarded operations;
	// its side-effect-free nature is inherited behavior, not a design goal.
	OverrideAidStatus(ctx context.Context, actor port.Actor, id int64, status string) (*entity.FinancialAidRequest, error)
}

type settlementServiceImpl struct {
	serviceReqRepo port.ServiceRequestRepository
	individualRepo port.IndividualRequestRepository
	aidRepo        port.FinancialAidRepository
	packageRepo    port.PackageRepository
	paymentRepo    port.PaymentRepository
	lawyerRepo     port.LawyerRepository
	txManager      port.TransactionManager
	activity       port.ActivityLogger
	logger         Logger
	cfg            SettlementConfig
	now            func() time.Time
}

// SettlementOption configures the settlement service
type SettlementOption func(*settlementServiceImpl)

// WithClock overrides the time source, primarily for tests
func WithClock(now func() time.Time) SettlementOption {
	return func(s *settlementServiceImpl) {
		s.now = now
	}
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	serviceReqRepo port.ServiceRequestRepository,
	individualRepo port.IndividualRequestRepository,
	aidRepo port.FinancialAidRepository,
	packageRepo port.PackageRepository,
	paymentRepo port.PaymentRepository,
	lawyerRepo port.LawyerRepository,
	txManager port.TransactionManager,
	activity port.ActivityLogger,
	logger Logger,
	cfg SettlementConfig,
	opts ...SettlementOption,
) SettlementService {
	s := &settlementServiceImpl{
		serviceReqRepo: serviceReqRepo,
		individualRepo: individualRepo,
		aidRepo:        aidRepo,
		packageRepo:    packageRepo,
		paymentRepo:    paymentRepo,
		lawyerRepo:     lawyerRepo,
		txManager:      txManager,
		activity:       activity,
		logger:         logger,
		cfg:            cfg,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ApproveServiceRequest approves a package purchase, computes its expiry from
// the package duration, and completes the linked payment transaction
func (s *settlementServiceImpl) ApproveServiceRequest(ctx context.Context, actor port.Actor, id int64, notes string) (*ServiceRequestOutcome, error) {
	req, err := s.serviceReqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("service request", id)
	}

	machine := appwf.BuildServiceRequestMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerApprove)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerApprove.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.ApprovedBy = actor.ID
	req.ApprovedDate = &now
	req.ApprovalNotes = notes

	for _, effect := range transition.Effects {
		if _, ok := effect.(domainwf.ComputeExpiry); ok {
			req.ExpiryDate = s.packageExpiry(ctx, req.PackageID, now)
		}
	}

	if err := s.persistServiceRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	outcome := &ServiceRequestOutcome{Request: req}
	s.applyPaymentEffects(ctx, transition.Effects, req.PaymentTransactionID, "",
		&outcome.PaymentSynced, &outcome.PaymentSyncFailed)

	s.recordActivity(ctx, actor, "approve", "service_request", req.ID, notes)
	s.logger.Info("Service request approved", "id", req.ID, "approved_by", actor.ID)
	return outcome, nil
}

// RejectServiceRequest rejects a package purchase. The linked payment
// transaction is deliberately left untouched.
func (s *settlementServiceImpl) RejectServiceRequest(ctx context.Context, actor port.Actor, id int64, reason string) (*ServiceRequestOutcome, error) {
	if reason == "" {
		return nil, MissingFieldError("reason")
	}

	req, err := s.serviceReqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("service request", id)
	}

	machine := appwf.BuildServiceRequestMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerReject)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerReject.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.RejectedBy = actor.ID
	req.RejectedDate = &now
	req.RejectionReason = reason

	if err := s.persistServiceRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actor, "reject", "service_request", req.ID, reason)
	s.logger.Info("Service request rejected", "id", req.ID, "rejected_by", actor.ID)
	return &ServiceRequestOutcome{Request: req}, nil
}

// ApproveIndividualRequest approves an individual service purchase,
// optionally assigning a lawyer, and completes the linked payment transaction
func (s *settlementServiceImpl) ApproveIndividualRequest(ctx context.Context, actor port.Actor, id int64, notes string, assignedLawyerID *int64) (*IndividualRequestOutcome, error) {
	req, err := s.individualRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get individual request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("individual service request", id)
	}

	if assignedLawyerID != nil {
		lawyer, err := s.lawyerRepo.GetByID(ctx, *assignedLawyerID)
		if err != nil {
			return nil, fmt.Errorf("resolve lawyer: %w", err)
		}
		if lawyer == nil {
			return nil, NotFoundError("lawyer", *assignedLawyerID)
		}
	}

	machine := appwf.BuildIndividualRequestMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerApprove)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerApprove.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.ApprovedBy = actor.ID
	req.ApprovedDate = &now
	req.ApprovalNotes = notes
	if assignedLawyerID != nil {
		req.AssignedLawyerID = assignedLawyerID
	}

	if err := s.persistIndividualRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	outcome := &IndividualRequestOutcome{Request: req}
	s.applyPaymentEffects(ctx, transition.Effects, req.PaymentTransactionID, "",
		&outcome.PaymentSynced, &outcome.PaymentSyncFailed)

	s.recordActivity(ctx, actor, "approve", "individual_request", req.ID, notes)
	s.logger.Info("Individual request approved", "id", req.ID, "approved_by", actor.ID)
	return outcome, nil
}

// RejectIndividualRequest rejects an individual service purchase and fails
// the linked payment transaction with the rejection reason
func (s *settlementServiceImpl) RejectIndividualRequest(ctx context.Context, actor port.Actor, id int64, reason string) (*IndividualRequestOutcome, error) {
	if reason == "" {
		return nil, MissingFieldError("reason")
	}

	req, err := s.individualRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get individual request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("individual service request", id)
	}

	machine := appwf.BuildIndividualRequestMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerReject)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerReject.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.RejectedBy = actor.ID
	req.RejectedDate = &now
	req.RejectionReason = reason

	if err := s.persistIndividualRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	outcome := &IndividualRequestOutcome{Request: req}
	s.applyPaymentEffects(ctx, transition.Effects, req.PaymentTransactionID, reason,
		&outcome.PaymentSynced, &outcome.PaymentSyncFailed)

	s.recordActivity(ctx, actor, "reject", "individual_request", req.ID, reason)
	s.logger.Info("Individual request rejected", "id", req.ID, "rejected_by", actor.ID)
	return outcome, nil
}

// ApproveFinancialAid approves an aid request, defaulting the approval terms
// the caller left unset
func (s *settlementServiceImpl) ApproveFinancialAid(ctx context.Context, actor port.Actor, id int64, approval AidApproval) (*entity.FinancialAidRequest, error) {
	req, err := s.aidRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get financial aid request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("financial aid request", id)
	}

	machine := appwf.BuildFinancialAidMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerApprove)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerApprove.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.ReviewedBy = actor.ID
	req.ReviewDate = &now
	req.ReviewNotes = approval.Notes

	for _, effect := range transition.Effects {
		if _, ok := effect.(domainwf.ApplyApprovalDefaults); ok {
			req.ApprovalDetails = s.buildApprovalDetails(req, approval, now)
		}
	}

	if err := s.persistAidRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actor, "approve", "financial_aid_request", req.ID, approval.Notes)
	s.logger.Info("Financial aid approved", "id", req.ID, "reviewed_by", actor.ID)
	return req, nil
}

// RejectFinancialAid rejects an aid request with a mandatory reason
func (s *settlementServiceImpl) RejectFinancialAid(ctx context.Context, actor port.Actor, id int64, reason string) (*entity.FinancialAidRequest, error) {
	if reason == "" {
		return nil, MissingFieldError("reason")
	}

	req, err := s.aidRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get financial aid request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("financial aid request", id)
	}

	machine := appwf.BuildFinancialAidMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerReject)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerReject.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.ReviewedBy = actor.ID
	req.ReviewDate = &now
	req.ReviewNotes = reason

	if err := s.persistAidRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actor, "reject", "financial_aid_request", req.ID, reason)
	s.logger.Info("Financial aid rejected", "id", req.ID, "reviewed_by", actor.ID)
	return req, nil
}

// RequestMoreInfo moves an aid request to requires_more_info, records the
// operator's message, and schedules a follow-up
func (s *settlementServiceImpl) RequestMoreInfo(ctx context.Context, actor port.Actor, id int64, message string, requiredDocuments []string) (*entity.FinancialAidRequest, error) {
	if message == "" {
		return nil, MissingFieldError("message")
	}

	req, err := s.aidRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get financial aid request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("financial aid request", id)
	}

	machine := appwf.BuildFinancialAidMachine(domainwf.State(req.Status))
	transition, err := machine.Fire(ctx, domainwf.TriggerRequestInfo)
	if err != nil {
		return nil, InvalidTransitionError(req.Status, domainwf.TriggerRequestInfo.String())
	}

	now := s.now()
	fromStatus := req.Status
	req.Status = transition.To.String()
	req.ReviewedBy = actor.ID
	req.ReviewDate = &now
	req.AdminResponse = &entity.AdminResponse{
		Message:           message,
		RequiredDocuments: requiredDocuments,
	}

	for _, effect := range transition.Effects {
		if _, ok := effect.(domainwf.ScheduleFollowUp); ok {
			followUp := now.AddDate(0, 0, s.cfg.FollowUpDays)
			req.FollowUpRequired = true
			req.FollowUpDate = &followUp
		}
	}

	if err := s.persistAidRequest(ctx, req, fromStatus); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actor, "request_info", "financial_aid_request", req.ID, message)
	s.logger.Info("Financial aid needs more info", "id", req.ID, "reviewed_by", actor.ID)
	return req, nil
}

// OverrideAidStatus performs an unguarded administrative status reassignment
func (s *settlementServiceImpl) OverrideAidStatus(ctx context.Context, actor port.Actor, id int64, status string) (*entity.FinancialAidRequest, error) {
	if !entity.IsValidAidStatus(status) {
		return nil, MissingFieldError("status")
	}

	req, err := s.aidRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get financial aid request: %w", err)
	}
	if req == nil {
		return nil, NotFoundError("financial aid request", id)
	}

	previous := req.Status
	req.Status = status

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.aidRepo.Update(txCtx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("override aid status: %w", err)
	}

	s.recordActivity(ctx, actor, "override_status", "financial_aid_request", req.ID,
		fmt.Sprintf("%s -> %s", previous, status))
	s.logger.Warn("Financial aid status overridden without settlement effects",
		"id", req.ID, "from", previous, "to", status, "actor", actor.ID)
	return req, nil
}

// packageExpiry computes the approval expiry from the package duration.
// Unknown durations leave the expiry unset.
func (s *settlementServiceImpl) packageExpiry(ctx context.Context, packageID int64, now time.Time) *time.Time {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil || pkg == nil {
		s.logger.Warn("Package not resolved, leaving expiry unset", "package_id", packageID, "error", err)
		return nil
	}
	return ExpiryFor(now, pkg.Duration)
}

// ExpiryFor derives the expiry date for a package duration at a reference
// time: one calendar month for monthly, one calendar year for yearly, nil
// otherwise
func ExpiryFor(now time.Time, duration string) *time.Time {
	var expiry time.Time
	switch duration {
	case entity.DurationMonthly:
		expiry = now.AddDate(0, 1, 0)
	case entity.DurationYearly:
		expiry = now.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &expiry
}

// buildApprovalDetails fills approval terms, defaulting unset fields from the request
func (s *settlementServiceImpl) buildApprovalDetails(req *entity.FinancialAidRequest, approval AidApproval, now time.Time) *entity.ApprovalDetails {
	details := &entity.ApprovalDetails{
		ApprovedAmount:             req.RequestedAmount,
		ApprovedDiscountPercentage: req.DiscountPercentage,
		PaymentPlan:                approval.PaymentPlan,
		Conditions:                 approval.Conditions,
		ValidUntil:                 now.AddDate(0, 0, s.cfg.AidValidityDays),
	}
	if approval.ApprovedAmount != nil {
		details.ApprovedAmount = *approval.ApprovedAmount
	}
	if approval.ApprovedDiscountPercentage != nil {
		details.ApprovedDiscountPercentage = *approval.ApprovedDiscountPercentage
	}
	if approval.ValidUntil != nil {
		details.ValidUntil = *approval.ValidUntil
	}
	return details
}

// persistServiceRequest writes the mutated request guarded by the source status
func (s *settlementServiceImpl) persistServiceRequest(ctx context.Context, req *entity.ServiceRequest, fromStatus string) error {
	var applied bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.serviceReqRepo.UpdateFrom(txCtx, req, fromStatus)
		if err != nil {
			return fmt.Errorf("update service request: %w", err)
		}
		applied = ok
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		// Lost the race: another caller transitioned the request first
		return InvalidTransitionError(fromStatus, "update")
	}
	return nil
}

func (s *settlementServiceImpl) persistIndividualRequest(ctx context.Context, req *entity.IndividualServiceRequest, fromStatus string) error {
	var applied bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.individualRepo.UpdateFrom(txCtx, req, fromStatus)
		if err != nil {
			return fmt.Errorf("update individual request: %w", err)
		}
		applied = ok
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		return InvalidTransitionError(fromStatus, "update")
	}
	return nil
}

func (s *settlementServiceImpl) persistAidRequest(ctx context.Context, req *entity.FinancialAidRequest, fromStatus string) error {
	var applied bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.aidRepo.UpdateFrom(txCtx, req, fromStatus)
		if err != nil {
			return fmt.Errorf("update financial aid request: %w", err)
		}
		applied = ok
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		return InvalidTransitionError(fromStatus, "update")
	}
	return nil
}

// applyPaymentEffects synchronizes the linked payment transaction after the
// status mutation committed. Failures are logged as a distinct warning and
// flagged on the outcome; the status mutation stands.
func (s *settlementServiceImpl) applyPaymentEffects(ctx context.Context, effects []domainwf.Effect, paymentID *int64, failureReason string, synced, syncFailed *bool) {
	for _, effect := range effects {
		var status, reason string
		switch effect.(type) {
		case domainwf.CompletePayment:
			status = entity.PaymentStatusCompleted
		case domainwf.FailPayment:
			status = entity.PaymentStatusFailed
			reason = failureReason
		default:
			continue
		}

		if paymentID == nil {
			continue
		}

		if err := s.paymentRepo.UpdateStatus(ctx, *paymentID, status, reason); err != nil {
			*syncFailed = true
			s.logger.Warn("Payment transaction sync failed, request status stands",
				"payment_transaction_id", *paymentID, "target_status", status, "error", err)
			continue
		}
		*synced = true
	}
}

// recordActivity notifies the activity log collaborator fire-and-forget
func (s *settlementServiceImpl) recordActivity(ctx context.Context, actor port.Actor, action, entityKind string, entityID int64, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, &entity.ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  s.now(),
	})
}
