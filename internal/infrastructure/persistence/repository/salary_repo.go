package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SalaryRepository implements port.SalaryRepository. The (lawyer_id, case_id)
// pair carries a UNIQUE index; duplicate inserts surface as
// port.ErrDuplicateEntry rather than being pre-checked.
type SalaryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSalaryRepository creates a new salary repository
func NewSalaryRepository(db *sql.DB, logger *zap.Logger) port.SalaryRepository {
	return &SalaryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a salary ledger entry, surfacing uniqueness violations
func (r *SalaryRepository) Create(ctx context.Context, salary *entity.LawyerSalary) error {
	query := `
		INSERT INTO lawyer_salaries (
			lawyer_id, case_id, amount, payment_status, paid_at, paid_by,
			transaction_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.Executor(ctx, r.db).ExecContext(ctx, query,
		salary.LawyerID,
		salary.CaseID,
		salary.Amount,
		salary.PaymentStatus,
		salary.PaidAt,
		salary.PaidBy,
		salary.TransactionID,
		salary.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return port.ErrDuplicateEntry
		}
		r.logger.Error("Failed to create salary entry",
			zap.Int64("lawyer_id", salary.LawyerID), zap.Int64("case_id", salary.CaseID), zap.Error(err))
		return fmt.Errorf("failed to create salary entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	salary.ID = id
	return nil
}

// GetByLawyerAndCase retrieves the ledger entry for a (lawyer, case) pair.
// Returns nil when absent.
func (r *SalaryRepository) GetByLawyerAndCase(ctx context.Context, lawyerID, caseID int64) (*entity.LawyerSalary, error) {
	query := `
		SELECT id, lawyer_id, case_id, amount, payment_status, paid_at,
			paid_by, transaction_id, created_at
		FROM lawyer_salaries
		WHERE lawyer_id = ? AND case_id = ?
	`

	salary, err := scanSalary(sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, lawyerID, caseID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get salary entry",
			zap.Int64("lawyer_id", lawyerID), zap.Int64("case_id", caseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get salary entry: %w", err)
	}

	return salary, nil
}

// ListByLawyer retrieves all ledger entries for a lawyer, newest first
func (r *SalaryRepository) ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.LawyerSalary, error) {
	query := `
		SELECT id, lawyer_id, case_id, amount, payment_status, paid_at,
			paid_by, transaction_id, created_at
		FROM lawyer_salaries
		WHERE lawyer_id = ?
		ORDER BY created_at DESC
	`

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, lawyerID)
	if err != nil {
		r.logger.Error("Failed to list salary entries", zap.Int64("lawyer_id", lawyerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list salary entries: %w", err)
	}
	defer rows.Close()

	var salaries []*entity.LawyerSalary
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary entry: %w", err)
		}
		salaries = append(salaries, salary)
	}
	return salaries, rows.Err()
}

func scanSalary(row rowScanner) (*entity.LawyerSalary, error) {
	var salary entity.LawyerSalary
	var paidAt sql.NullTime
	var paidBy, transactionID sql.NullString

	err := row.Scan(
		&salary.ID,
		&salary.LawyerID,
		&salary.CaseID,
		&salary.Amount,
		&salary.PaymentStatus,
		&paidAt,
		&paidBy,
		&transactionID,
		&salary.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		salary.PaidAt = &paidAt.Time
	}
	salary.PaidBy = paidBy.String
	salary.TransactionID = transactionID.String

	return &salary, nil
}
