package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// FinancialAidRepository implements port.FinancialAidRepository. The nested
// approval details and admin response documents are stored as JSON columns.
type FinancialAidRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFinancialAidRepository creates a new financial aid repository
func NewFinancialAidRepository(db *sql.DB, logger *zap.Logger) port.FinancialAidRepository {
	return &FinancialAidRepository{
		db:     db,
		logger: logger,
	}
}

const aidColumns = `
	id, client_id, request_type, requested_amount, discount_percentage,
	priority, status, reviewed_by, review_date, review_notes,
	approval_details, admin_response, follow_up_required, follow_up_date,
	created_at, updated_at
`

// Create inserts a new financial aid request
func (r *FinancialAidRepository) Create(ctx context.Context, req *entity.FinancialAidRequest) error {
	query := `
		INSERT INTO financial_aid_requests (
			client_id, request_type, requested_amount, discount_percentage,
			priority, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.ClientID,
		req.RequestType,
		req.RequestedAmount,
		req.DiscountPercentage,
		req.Priority,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create financial aid request", zap.Error(err))
		return fmt.Errorf("failed to create financial aid request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID retrieves a financial aid request by ID. Returns nil when absent.
func (r *FinancialAidRepository) GetByID(ctx context.Context, id int64) (*entity.FinancialAidRequest, error) {
	query := `SELECT ` + aidColumns + ` FROM financial_aid_requests WHERE id = ?`

	req, err := scanAidRequest(sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get financial aid request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get financial aid request: %w", err)
	}

	return req, nil
}

// UpdateFrom persists mutable fields guarded by the expected source status
func (r *FinancialAidRepository) UpdateFrom(ctx context.Context, req *entity.FinancialAidRequest, fromStatus string) (bool, error) {
	approvalJSON, adminJSON, err := marshalAidDocuments(req)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE financial_aid_requests
		SET status = ?, reviewed_by = ?, review_date = ?, review_notes = ?,
			approval_details = ?, admin_response = ?, follow_up_required = ?,
			follow_up_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.Status,
		req.ReviewedBy,
		req.ReviewDate,
		req.ReviewNotes,
		approvalJSON,
		adminJSON,
		req.FollowUpRequired,
		req.FollowUpDate,
		req.ID,
		fromStatus,
	)
	if err != nil {
		r.logger.Error("Failed to update financial aid request", zap.Int64("id", req.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update financial aid request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// Update persists the request unconditionally (administrative override path)
func (r *FinancialAidRepository) Update(ctx context.Context, req *entity.FinancialAidRequest) error {
	approvalJSON, adminJSON, err := marshalAidDocuments(req)
	if err != nil {
		return err
	}

	query := `
		UPDATE financial_aid_requests
		SET status = ?, reviewed_by = ?, review_date = ?, review_notes = ?,
			approval_details = ?, admin_response = ?, follow_up_required = ?,
			follow_up_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err = sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		req.Status,
		req.ReviewedBy,
		req.ReviewDate,
		req.ReviewNotes,
		approvalJSON,
		adminJSON,
		req.FollowUpRequired,
		req.FollowUpDate,
		req.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update financial aid request", zap.Int64("id", req.ID), zap.Error(err))
		return fmt.Errorf("failed to update financial aid request: %w", err)
	}

	return nil
}

// List retrieves a paginated list of financial aid requests, newest first
func (r *FinancialAidRepository) List(ctx context.Context, limit, offset int) ([]*entity.FinancialAidRequest, error) {
	query := `SELECT ` + aidColumns + `
		FROM financial_aid_requests ORDER BY created_at DESC LIMIT ? OFFSET ?`

	if limit <= 0 {
		limit = -1
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list financial aid requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list financial aid requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.FinancialAidRequest
	for rows.Next() {
		req, err := scanAidRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial aid request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// CountByStatus groups financial aid requests by status
func (r *FinancialAidRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "status")
}

// CountByPriority groups financial aid requests by priority
func (r *FinancialAidRepository) CountByPriority(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "priority")
}

// CountByType groups financial aid requests by request type
func (r *FinancialAidRepository) CountByType(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "request_type")
}

func (r *FinancialAidRepository) countBy(ctx context.Context, column string) (map[string]int, error) {
	// column is one of three fixed names, never caller input
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM financial_aid_requests GROUP BY %s`, column, column)

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count financial aid requests", zap.String("column", column), zap.Error(err))
		return nil, fmt.Errorf("failed to count financial aid requests: %w", err)
	}
	defer rows.Close()

	return collectStatusCounts(rows)
}

func marshalAidDocuments(req *entity.FinancialAidRequest) (approvalJSON, adminJSON sql.NullString, err error) {
	if req.ApprovalDetails != nil {
		data, err := json.Marshal(req.ApprovalDetails)
		if err != nil {
			return approvalJSON, adminJSON, fmt.Errorf("failed to marshal approval details: %w", err)
		}
		approvalJSON = sql.NullString{String: string(data), Valid: true}
	}
	if req.AdminResponse != nil {
		data, err := json.Marshal(req.AdminResponse)
		if err != nil {
			return approvalJSON, adminJSON, fmt.Errorf("failed to marshal admin response: %w", err)
		}
		adminJSON = sql.NullString{String: string(data), Valid: true}
	}
	return approvalJSON, adminJSON, nil
}

func scanAidRequest(row rowScanner) (*entity.FinancialAidRequest, error) {
	var req entity.FinancialAidRequest
	var reviewedBy, reviewNotes, approvalJSON, adminJSON sql.NullString
	var reviewDate, followUpDate sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ClientID,
		&req.RequestType,
		&req.RequestedAmount,
		&req.DiscountPercentage,
		&req.Priority,
		&req.Status,
		&reviewedBy,
		&reviewDate,
		&reviewNotes,
		&approvalJSON,
		&adminJSON,
		&req.FollowUpRequired,
		&followUpDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.ReviewedBy = reviewedBy.String
	req.ReviewNotes = reviewNotes.String
	if reviewDate.Valid {
		req.ReviewDate = &reviewDate.Time
	}
	if followUpDate.Valid {
		req.FollowUpDate = &followUpDate.Time
	}
	if approvalJSON.Valid && approvalJSON.String != "" {
		var details entity.ApprovalDetails
		if err := json.Unmarshal([]byte(approvalJSON.String), &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal approval details: %w", err)
		}
		req.ApprovalDetails = &details
	}
	if adminJSON.Valid && adminJSON.String != "" {
		var response entity.AdminResponse
		if err := json.Unmarshal([]byte(adminJSON.String), &response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal admin response: %w", err)
		}
		req.AdminResponse = &response
	}

	return &req, nil
}
