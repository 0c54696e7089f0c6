package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cardvault/internal/common"
	"cardvault/internal/entity"
)

// EmployeeRepository manages the uploading employees.
type EmployeeRepository interface {
	Create(ctx context.Context, name string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	// Delete removes an employee and nullifies references on business cards
	// inside one transaction, so card rows survive the deletion.
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewEmployeeRepository(db *sql.DB, logger *slog.Logger) EmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &employeeRepository{db: db, logger: logger}
}

func (r *employeeRepository) Create(ctx context.Context, name string) (*entity.Employee, error) {
	e := &entity.Employee{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, created_at) VALUES ($1,$2,$3)`,
		e.ID.String(), e.Name, e.CreatedAt,
	)
	if err != nil {
		r.logger.Error("employees.create.failed", "name", name, "error", err)
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM employees ORDER BY name`)
	if err != nil {
		r.logger.Error("employees.list.failed", "error", err)
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		var rawID string
		if err := rows.Scan(&rawID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse employee id %q: %w", rawID, err)
		}
		e.ID = id
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`UPDATE business_cards SET employee_id = NULL WHERE employee_id = $1`,
		id.String(),
	); err != nil {
		return fmt.Errorf("nullify card references: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM employees WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}

	r.logger.Info("employees.delete.ok", "employee_id", id.String())
	return nil
}
