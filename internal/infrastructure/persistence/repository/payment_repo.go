package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment transaction
func (r *PaymentRepository) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (
			client_id, service_package_id, individual_service_id, amount,
			payment_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		tx.ClientID,
		tx.ServicePackageID,
		tx.IndividualServiceID,
		tx.Amount,
		tx.PaymentStatus,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create payment transaction", zap.Error(err))
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	tx.ID = id
	return nil
}

// GetByID retrieves a payment transaction by ID. Returns nil when absent.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*entity.PaymentTransaction, error) {
	query := `
		SELECT id, client_id, service_package_id, individual_service_id,
			amount, payment_status, failure_reason, created_at, updated_at
		FROM payment_transactions
		WHERE id = ?
	`

	var tx entity.PaymentTransaction
	var packageID, serviceID sql.NullInt64
	var failureReason sql.NullString

	err := sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.ClientID,
		&packageID,
		&serviceID,
		&tx.Amount,
		&tx.PaymentStatus,
		&failureReason,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get payment transaction", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	if packageID.Valid {
		tx.ServicePackageID = &packageID.Int64
	}
	if serviceID.Valid {
		tx.IndividualServiceID = &serviceID.Int64
	}
	tx.FailureReason = failureReason.String

	return &tx, nil
}

// UpdateStatus transitions a payment transaction's status
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status, failureReason string) error {
	query := `
		UPDATE payment_transactions
		SET payment_status = ?, failure_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query, status, failureReason, id)
	if err != nil {
		r.logger.Error("Failed to update payment status", zap.Int64("id", id), zap.String("status", status), zap.Error(err))
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment transaction %d not found", id)
	}

	return nil
}

// SumCompletedBetween sums completed payment amounts in [from, to)
func (r *PaymentRepository) SumCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_transactions
		WHERE payment_status = ? AND created_at >= ? AND created_at < ?
	`

	var total int64
	err := sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, entity.PaymentStatusCompleted, from, to).Scan(&total)
	if err != nil {
		r.logger.Error("Failed to sum completed payments", zap.Error(err))
		return 0, fmt.Errorf("failed to sum completed payments: %w", err)
	}

	return total, nil
}

// SumCompleted sums all completed payment amounts
func (r *PaymentRepository) SumCompleted(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_transactions
		WHERE payment_status = ?
	`

	var total int64
	err := sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, entity.PaymentStatusCompleted).Scan(&total)
	if err != nil {
		r.logger.Error("Failed to sum completed payments", zap.Error(err))
		return 0, fmt.Errorf("failed to sum completed payments: %w", err)
	}

	return total, nil
}
