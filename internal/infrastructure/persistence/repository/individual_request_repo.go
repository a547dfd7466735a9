package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// IndividualRequestRepository implements port.IndividualRequestRepository
type IndividualRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIndividualRequestRepository creates a new individual request repository
func NewIndividualRequestRepository(db *sql.DB, logger *zap.Logger) port.IndividualRequestRepository {
	return &IndividualRequestRepository{
		db:     db,
		logger: logger,
	}
}

const individualRequestColumns = `
	id, client_id, individual_service_id, assigned_lawyer_id, status,
	payment_transaction_id, approved_by, rejected_by, approval_notes,
	rejection_reason, approved_date, rejected_date, created_at, updated_at
`

// Create inserts a new individual service request
func (r *IndividualRequestRepository) Create(ctx context.Context, req *entity.IndividualServiceRequest) error {
	query := `
		INSERT INTO individual_service_requests (
			client_id, individual_service_id, status, payment_transaction_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.ClientID,
		req.IndividualServiceID,
		req.Status,
		req.PaymentTransactionID,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create individual request", zap.Error(err))
		return fmt.Errorf("failed to create individual request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID retrieves an individual service request by ID. Returns nil when absent.
func (r *IndividualRequestRepository) GetByID(ctx context.Context, id int64) (*entity.IndividualServiceRequest, error) {
	query := `SELECT ` + individualRequestColumns + ` FROM individual_service_requests WHERE id = ?`

	req, err := scanIndividualRequest(sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get individual request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get individual request: %w", err)
	}

	return req, nil
}

// UpdateFrom persists mutable fields guarded by the expected source status
func (r *IndividualRequestRepository) UpdateFrom(ctx context.Context, req *entity.IndividualServiceRequest, fromStatus string) (bool, error) {
	query := `
		UPDATE individual_service_requests
		SET status = ?, assigned_lawyer_id = ?, approved_by = ?, rejected_by = ?,
			approval_notes = ?, rejection_reason = ?, approved_date = ?,
			rejected_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.Status,
		req.AssignedLawyerID,
		req.ApprovedBy,
		req.RejectedBy,
		req.ApprovalNotes,
		req.RejectionReason,
		req.ApprovedDate,
		req.RejectedDate,
		req.ID,
		fromStatus,
	)
	if err != nil {
		r.logger.Error("Failed to update individual request", zap.Int64("id", req.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update individual request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// List retrieves a paginated list of individual requests, newest first
func (r *IndividualRequestRepository) List(ctx context.Context, limit, offset int) ([]*entity.IndividualServiceRequest, error) {
	query := `SELECT ` + individualRequestColumns + `
		FROM individual_service_requests ORDER BY created_at DESC LIMIT ? OFFSET ?`

	if limit <= 0 {
		limit = -1
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list individual requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list individual requests: %w", err)
	}
	defer rows.Close()

	return collectIndividualRequests(rows)
}

// ListByStatus retrieves up to limit requests in the given status, newest first
func (r *IndividualRequestRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.IndividualServiceRequest, error) {
	query := `SELECT ` + individualRequestColumns + `
		FROM individual_service_requests WHERE status = ? ORDER BY created_at DESC LIMIT ?`

	if limit <= 0 {
		limit = -1
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, status, limit)
	if err != nil {
		r.logger.Error("Failed to list individual requests by status", zap.String("status", status), zap.Error(err))
		return nil, fmt.Errorf("failed to list individual requests by status: %w", err)
	}
	defer rows.Close()

	return collectIndividualRequests(rows)
}

// CountByStatus groups individual requests by status
func (r *IndividualRequestRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM individual_service_requests GROUP BY status`

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count individual requests", zap.Error(err))
		return nil, fmt.Errorf("failed to count individual requests: %w", err)
	}
	defer rows.Close()

	return collectStatusCounts(rows)
}

func scanIndividualRequest(row rowScanner) (*entity.IndividualServiceRequest, error) {
	var req entity.IndividualServiceRequest
	var lawyerID, paymentID sql.NullInt64
	var approvedBy, rejectedBy, approvalNotes, rejectionReason sql.NullString
	var approvedDate, rejectedDate sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ClientID,
		&req.IndividualServiceID,
		&lawyerID,
		&req.Status,
		&paymentID,
		&approvedBy,
		&rejectedBy,
		&approvalNotes,
		&rejectionReason,
		&approvedDate,
		&rejectedDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lawyerID.Valid {
		req.AssignedLawyerID = &lawyerID.Int64
	}
	if paymentID.Valid {
		req.PaymentTransactionID = &paymentID.Int64
	}
	req.ApprovedBy = approvedBy.String
	req.RejectedBy = rejectedBy.String
	req.ApprovalNotes = approvalNotes.String
	req.RejectionReason = rejectionReason.String
	if approvedDate.Valid {
		req.ApprovedDate = &approvedDate.Time
	}
	if rejectedDate.Valid {
		req.RejectedDate = &rejectedDate.Time
	}

	return &req, nil
}

func collectIndividualRequests(rows *sql.Rows) ([]*entity.IndividualServiceRequest, error) {
	var requests []*entity.IndividualServiceRequest
	for rows.Next() {
		req, err := scanIndividualRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan individual request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
