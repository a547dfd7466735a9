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

// ServiceRequestRepository implements port.ServiceRequestRepository
type ServiceRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewServiceRequestRepository creates a new service request repository
func NewServiceRequestRepository(db *sql.DB, logger *zap.Logger) port.ServiceRequestRepository {
	return &ServiceRequestRepository{
		db:     db,
		logger: logger,
	}
}

const serviceRequestColumns = `
	id, client_id, package_id, status, payment_transaction_id,
	approved_by, rejected_by, approval_notes, rejection_reason,
	approved_date, rejected_date, expiry_date, created_at, updated_at
`

// Create inserts a new service request
func (r *ServiceRequestRepository) Create(ctx context.Context, req *entity.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (
			client_id, package_id, status, payment_transaction_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.ClientID,
		req.PackageID,
		req.Status,
		req.PaymentTransactionID,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create service request", zap.Error(err))
		return fmt.Errorf("failed to create service request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID retrieves a service request by ID. Returns nil when absent.
func (r *ServiceRequestRepository) GetByID(ctx context.Context, id int64) (*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests WHERE id = ?`

	req, err := scanServiceRequest(sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get service request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}

	return req, nil
}

// UpdateFrom persists mutable fields guarded by the expected source status.
// Returns false when a concurrent transition already moved the row.
func (r *ServiceRequestRepository) UpdateFrom(ctx context.Context, req *entity.ServiceRequest, fromStatus string) (bool, error) {
	query := `
		UPDATE service_requests
		SET status = ?, approved_by = ?, rejected_by = ?, approval_notes = ?,
			rejection_reason = ?, approved_date = ?, rejected_date = ?,
			expiry_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.Status,
		req.ApprovedBy,
		req.RejectedBy,
		req.ApprovalNotes,
		req.RejectionReason,
		req.ApprovedDate,
		req.RejectedDate,
		req.ExpiryDate,
		req.ID,
		fromStatus,
	)
	if err != nil {
		r.logger.Error("Failed to update service request", zap.Int64("id", req.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update service request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// List retrieves a paginated list of service requests, newest first
func (r *ServiceRequestRepository) List(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + `
		FROM service_requests ORDER BY created_at DESC LIMIT ? OFFSET ?`

	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list service requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	defer rows.Close()

	return collectServiceRequests(rows)
}

// ListByStatus retrieves up to limit requests in the given status, newest first
func (r *ServiceRequestRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + `
		FROM service_requests WHERE status = ? ORDER BY created_at DESC LIMIT ?`

	if limit <= 0 {
		limit = -1
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, status, limit)
	if err != nil {
		r.logger.Error("Failed to list service requests by status", zap.String("status", status), zap.Error(err))
		return nil, fmt.Errorf("failed to list service requests by status: %w", err)
	}
	defer rows.Close()

	return collectServiceRequests(rows)
}

// CountByStatus groups service requests by status
func (r *ServiceRequestRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM service_requests GROUP BY status`

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count service requests", zap.Error(err))
		return nil, fmt.Errorf("failed to count service requests: %w", err)
	}
	defer rows.Close()

	return collectStatusCounts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanServiceRequest(row rowScanner) (*entity.ServiceRequest, error) {
	var req entity.ServiceRequest
	var paymentID sql.NullInt64
	var approvedBy, rejectedBy, approvalNotes, rejectionReason sql.NullString
	var approvedDate, rejectedDate, expiryDate sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ClientID,
		&req.PackageID,
		&req.Status,
		&paymentID,
		&approvedBy,
		&rejectedBy,
		&approvalNotes,
		&rejectionReason,
		&approvedDate,
		&rejectedDate,
		&expiryDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
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
	if expiryDate.Valid {
		req.ExpiryDate = &expiryDate.Time
	}

	return &req, nil
}

func collectServiceRequests(rows *sql.Rows) ([]*entity.ServiceRequest, error) {
	var requests []*entity.ServiceRequest
	for rows.Next() {
		req, err := scanServiceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func collectStatusCounts(rows *sql.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
