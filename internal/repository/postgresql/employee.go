package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, employee_code, is_active
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(&e.ID, &e.CompanyID, &e.FullName, &e.Code, &e.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// NamesByIDs implements employee.Repository.
func (r *employeeRepository) NamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name
		FROM employees
		WHERE company_id = $1 AND id = ANY($2)
	`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan employee name: %w", err)
		}
		names[id] = name
	}

	return names, nil
}

// ListActiveIDs implements employee.Repository.
func (r *employeeRepository) ListActiveIDs(ctx context.Context, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
