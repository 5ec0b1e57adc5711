package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type periodOverrideRepository struct {
	db *database.DB
}

func NewPeriodOverrideRepository(db *database.DB) periodoverride.Repository {
	return &periodOverrideRepository{db: db}
}

const periodOverrideColumns = `
	id, employee_id, company_id, period_start, period_end,
	override_regular_hours, override_ot_hours,
	override_weekend_ot_hours, override_stat_holiday_hours,
	reason, period_number, year, created_at, updated_at`

func scanPeriodOverride(row rowScanner) (periodoverride.PeriodOverride, error) {
	var o periodoverride.PeriodOverride
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.CompanyID, &o.PeriodStart, &o.PeriodEnd,
		&o.OverrideRegularHours, &o.OverrideOTHours,
		&o.OverrideWeekendOTHours, &o.OverrideStatHolidayHours,
		&o.Reason, &o.PeriodNumber, &o.Year, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Get implements periodoverride.Repository.
func (r *periodOverrideRepository) Get(ctx context.Context, employeeID, companyID string, periodStart, periodEnd time.Time) (periodoverride.PeriodOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodOverrideColumns + `
		FROM period_overrides
		WHERE employee_id = $1
		  AND company_id = $2
		  AND period_start = $3
		  AND period_end = $4
	`

	o, err := scanPeriodOverride(q.QueryRow(ctx, query, employeeID, companyID, periodStart, periodEnd))
	if err != nil {
		if err == pgx.ErrNoRows {
			return periodoverride.PeriodOverride{}, periodoverride.ErrPeriodOverrideNotFound
		}
		return periodoverride.PeriodOverride{}, fmt.Errorf("failed to get period override: %w", err)
	}

	return o, nil
}

// GetForPeriod implements periodoverride.Repository.
func (r *periodOverrideRepository) GetForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]periodoverride.PeriodOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodOverrideColumns + `
		FROM period_overrides
		WHERE company_id = $1
		  AND period_start = $2
		  AND period_end = $3
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query period overrides: %w", err)
	}
	defer rows.Close()

	var overrides []periodoverride.PeriodOverride
	for rows.Next() {
		o, err := scanPeriodOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period override: %w", err)
		}
		overrides = append(overrides, o)
	}

	return overrides, nil
}

// Upsert implements periodoverride.Repository. The unique index on the
// period tuple makes the insert-or-replace atomic; when the caller
// supplies expectedUpdatedAt the DO UPDATE is guarded so a concurrent
// edit surfaces as a conflict rather than a silent overwrite.
func (r *periodOverrideRepository) Upsert(ctx context.Context, override periodoverride.PeriodOverride, expectedUpdatedAt *time.Time) (periodoverride.PeriodOverride, error) {
	q := GetQuerier(ctx, r.db)

	guard := ""
	args := []interface{}{
		override.EmployeeID, override.CompanyID,
		override.PeriodStart, override.PeriodEnd,
		override.OverrideRegularHours, override.OverrideOTHours,
		override.OverrideWeekendOTHours, override.OverrideStatHolidayHours,
		override.Reason, override.PeriodNumber, override.Year,
	}
	if expectedUpdatedAt != nil {
		guard = "WHERE period_overrides.updated_at = $12"
		args = append(args, *expectedUpdatedAt)
	}

	query := `
		INSERT INTO period_overrides (
			employee_id, company_id, period_start, period_end,
			override_regular_hours, override_ot_hours,
			override_weekend_ot_hours, override_stat_holiday_hours,
			reason, period_number, year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, company_id, period_start, period_end) DO UPDATE SET
			override_regular_hours = EXCLUDED.override_regular_hours,
			override_ot_hours = EXCLUDED.override_ot_hours,
			override_weekend_ot_hours = EXCLUDED.override_weekend_ot_hours,
			override_stat_holiday_hours = EXCLUDED.override_stat_holiday_hours,
			reason = EXCLUDED.reason,
			period_number = EXCLUDED.period_number,
			year = EXCLUDED.year,
			updated_at = NOW()
		` + guard + `
		RETURNING ` + periodOverrideColumns

	o, err := scanPeriodOverride(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			// The conflict row exists but the guard did not match
			return periodoverride.PeriodOverride{}, periodoverride.ErrPeriodOverrideConflict
		}
		return periodoverride.PeriodOverride{}, fmt.Errorf("failed to upsert period override: %w", err)
	}

	return o, nil
}

// Delete implements periodoverride.Repository.
func (r *periodOverrideRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM period_overrides WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete period override: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return periodoverride.ErrPeriodOverrideNotFound
	}

	return nil
}
