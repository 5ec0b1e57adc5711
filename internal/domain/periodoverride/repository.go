package periodoverride

import (
	"context"
	"time"
)

// Repository defines data access for period overrides.
type Repository interface {
	// Get retrieves the override for an employee-period tuple; missing
	// rows return ErrPeriodOverrideNotFound
	Get(ctx context.Context, employeeID, companyID string, periodStart, periodEnd time.Time) (PeriodOverride, error)

	// GetForPeriod retrieves all overrides stored for exactly the given
	// period tuple, for report aggregation. An override belongs to one
	// period; overrides from periods merely overlapping the bounds must
	// not leak into another period's totals.
	GetForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]PeriodOverride, error)

	// Upsert inserts or replaces the override keyed by the period tuple.
	// When expectedUpdatedAt is non-nil the update only applies if the
	// stored row still carries that timestamp; a stale value returns
	// ErrPeriodOverrideConflict.
	Upsert(ctx context.Context, override PeriodOverride, expectedUpdatedAt *time.Time) (PeriodOverride, error)

	// Delete removes an override by ID, reverting the period's effective
	// totals to the record-level sums
	Delete(ctx context.Context, id string, companyID string) error
}
