package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/domain/entity"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// LawyerRepository implements port.LawyerRepository
type LawyerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLawyerRepository creates a new lawyer repository
func NewLawyerRepository(db *sql.DB, logger *zap.Logger) port.LawyerRepository {
	return &LawyerRepository{db: db, logger: logger}
}

// GetByID retrieves a lawyer by ID. Returns nil when absent.
func (r *LawyerRepository) GetByID(ctx context.Context, id int64) (*entity.Lawyer, error) {
	query := `SELECT id, name, email FROM lawyers WHERE id = ?`

	var lawyer entity.Lawyer
	var email sql.NullString

	err := sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&lawyer.ID, &lawyer.Name, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get lawyer", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get lawyer: %w", err)
	}

	lawyer.Email = email.String
	return &lawyer, nil
}

// List retrieves all lawyers ordered by id
func (r *LawyerRepository) List(ctx context.Context) ([]*entity.Lawyer, error) {
	query := `SELECT id, name, email FROM lawyers ORDER BY id`

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list lawyers", zap.Error(err))
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}
	defer rows.Close()

	var lawyers []*entity.Lawyer
	for rows.Next() {
		var lawyer entity.Lawyer
		var email sql.NullString
		if err := rows.Scan(&lawyer.ID, &lawyer.Name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan lawyer: %w", err)
		}
		lawyer.Email = email.String
		lawyers = append(lawyers, &lawyer)
	}
	return lawyers, rows.Err()
}

// CaseRepository implements port.CaseRepository. Read-only: cases are owned
// by the case-management system.
type CaseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *sql.DB, logger *zap.Logger) port.CaseRepository {
	return &CaseRepository{db: db, logger: logger}
}

// GetByID retrieves a case by ID. Returns nil when absent.
func (r *CaseRepository) GetByID(ctx context.Context, id int64) (*entity.Case, error) {
	query := `SELECT id, case_number, status, current_lawyer_id, created_at FROM cases WHERE id = ?`

	c, err := scanCase(sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get case", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	return c, nil
}

// ListByLawyerAndStatuses retrieves a lawyer's cases restricted to the given statuses
func (r *CaseRepository) ListByLawyerAndStatuses(ctx context.Context, lawyerID int64, statuses []string) ([]*entity.Case, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	query := `SELECT id, case_number, status, current_lawyer_id, created_at
		FROM cases WHERE current_lawyer_id = ? AND status IN (` + placeholders + `)
		ORDER BY created_at`

	args := make([]interface{}, 0, len(statuses)+1)
	args = append(args, lawyerID)
	for _, status := range statuses {
		args = append(args, status)
	}

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list cases by statuses", zap.Int64("lawyer_id", lawyerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list cases by statuses: %w", err)
	}
	defer rows.Close()

	return collectCases(rows)
}

// ListByLawyer retrieves all of a lawyer's cases regardless of status
func (r *CaseRepository) ListByLawyer(ctx context.Context, lawyerID int64) ([]*entity.Case, error) {
	query := `SELECT id, case_number, status, current_lawyer_id, created_at
		FROM cases WHERE current_lawyer_id = ? ORDER BY created_at`

	rows, err := sqlite.Executor(ctx, r.db).QueryContext(ctx, query, lawyerID)
	if err != nil {
		r.logger.Error("Failed to list cases", zap.Int64("lawyer_id", lawyerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	return collectCases(rows)
}

func scanCase(row rowScanner) (*entity.Case, error) {
	var c entity.Case
	var lawyerID sql.NullInt64

	err := row.Scan(&c.ID, &c.CaseNumber, &c.Status, &lawyerID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	if lawyerID.Valid {
		c.CurrentLawyerID = &lawyerID.Int64
	}
	return &c, nil
}

func collectCases(rows *sql.Rows) ([]*entity.Case, error) {
	var cases []*entity.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// PackageRepository implements port.PackageRepository
type PackageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *sql.DB, logger *zap.Logger) port.PackageRepository {
	return &PackageRepository{db: db, logger: logger}
}

// GetByID retrieves a service package by ID. Returns nil when absent.
func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*entity.ServicePackage, error) {
	query := `SELECT id, name, price, duration FROM service_packages WHERE id = ?`

	var pkg entity.ServicePackage
	err := sqlite.Executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&pkg.ID, &pkg.Name, &pkg.Price, &pkg.Duration)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get service package", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get service package: %w", err)
	}

	return &pkg, nil
}
