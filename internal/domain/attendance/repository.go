package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Every method
// takes companyID to prevent cross-company data access.
type Repository interface {
	// Create inserts a new record. The unique (employee_id, date) index
	// turns concurrent duplicates into ErrDuplicateRecord.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// Exists reports whether a record is stored for the employee-date key
	Exists(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)

	// ListRange retrieves records in a date range, optionally scoped to
	// one employee, ordered by employee then date
	ListRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) ([]Record, error)

	// UpdateOverrides persists only the override layer of the record
	UpdateOverrides(ctx context.Context, record Record) error

	// UpdateCalculated persists only the base buckets and rounded
	// punches, leaving the override layer untouched
	UpdateCalculated(ctx context.Context, record Record) error

	// DeleteRange deletes records in range scoped to the given filters
	// and returns the number of rows removed
	DeleteRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) (int64, error)
}
