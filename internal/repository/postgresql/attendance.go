package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.check_in, a.check_out, a.rounded_check_in, a.rounded_check_out,
	a.regular_hours, a.ot_hours, a.weekend_ot_hours, a.stat_holiday_hours,
	a.override_check_in, a.override_check_out,
	a.override_regular_hours, a.override_ot_hours,
	a.override_weekend_ot_hours, a.override_stat_holiday_hours,
	a.time_edit_reason, a.hours_edit_reason, a.remarks,
	a.leave_type, a.stat_holiday_name,
	a.created_at, a.updated_at,
	e.full_name AS employee_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckIn, &rec.CheckOut, &rec.RoundedCheckIn, &rec.RoundedCheckOut,
		&rec.RegularHours, &rec.OTHours, &rec.WeekendOTHours, &rec.StatHolidayHours,
		&rec.OverrideCheckIn, &rec.OverrideCheckOut,
		&rec.OverrideRegularHours, &rec.OverrideOTHours,
		&rec.OverrideWeekendOTHours, &rec.OverrideStatHolidayHours,
		&rec.TimeEditReason, &rec.HoursEditReason, &rec.Remarks,
		&rec.LeaveType, &rec.StatHolidayName,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date,
			check_in, check_out, rounded_check_in, rounded_check_out,
			regular_hours, ot_hours, weekend_ot_hours, stat_holiday_hours,
			override_check_in, override_check_out,
			override_regular_hours, override_ot_hours,
			override_weekend_ot_hours, override_stat_holiday_hours,
			time_edit_reason, hours_edit_reason, remarks,
			leave_type, stat_holiday_name
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.CompanyID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.RoundedCheckIn,
		rec.RoundedCheckOut,
		rec.RegularHours,
		rec.OTHours,
		rec.WeekendOTHours,
		rec.StatHolidayHours,
		rec.OverrideCheckIn,
		rec.OverrideCheckOut,
		rec.OverrideRegularHours,
		rec.OverrideOTHours,
		rec.OverrideWeekendOTHours,
		rec.OverrideStatHolidayHours,
		rec.TimeEditReason,
		rec.HoursEditReason,
		rec.Remarks,
		rec.LeaveType,
		rec.StatHolidayName,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uq_attendance_employee_date") {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// Exists implements attendance.Repository.
func (a *attendanceRepository) Exists(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_records
			WHERE employee_id = $1
			  AND date = $2
			  AND company_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance record existence: %w", err)
	}

	return exists, nil
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.company_id = $1 AND a.date >= $2 AND a.date <= $3"
	args := []interface{}{companyID, start, end}

	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND a.employee_id = $4"
		args = append(args, *employeeID)
	}

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.employee_id, a.date
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// UpdateOverrides implements attendance.Repository. Every override column
// is written from the record so a nil pointer clears a stored override;
// the base buckets are never touched here.
func (a *attendanceRepository) UpdateOverrides(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			override_check_in = $1,
			override_check_out = $2,
			override_regular_hours = $3,
			override_ot_hours = $4,
			override_weekend_ot_hours = $5,
			override_stat_holiday_hours = $6,
			time_edit_reason = $7,
			hours_edit_reason = $8,
			remarks = $9,
			updated_at = $10
		WHERE id = $11 AND company_id = $12
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.OverrideCheckIn,
		rec.OverrideCheckOut,
		rec.OverrideRegularHours,
		rec.OverrideOTHours,
		rec.OverrideWeekendOTHours,
		rec.OverrideStatHolidayHours,
		rec.TimeEditReason,
		rec.HoursEditReason,
		rec.Remarks,
		time.Now(),
		rec.ID,
		rec.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance overrides: %w", err)
	}

	return nil
}

// UpdateCalculated implements attendance.Repository. Only the derived
// base buckets and rounded punches change; the override layer stays as
// stored.
func (a *attendanceRepository) UpdateCalculated(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			regular_hours = $1,
			ot_hours = $2,
			weekend_ot_hours = $3,
			stat_holiday_hours = $4,
			rounded_check_in = $5,
			rounded_check_out = $6,
			updated_at = $7
		WHERE id = $8 AND company_id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.RegularHours,
		rec.OTHours,
		rec.WeekendOTHours,
		rec.StatHolidayHours,
		rec.RoundedCheckIn,
		rec.RoundedCheckOut,
		time.Now(),
		rec.ID,
		rec.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update calculated buckets: %w", err)
	}

	return nil
}

// DeleteRange implements attendance.Repository.
func (a *attendanceRepository) DeleteRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "company_id = $1 AND date >= $2 AND date <= $3"
	args := []interface{}{companyID, start, end}

	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND employee_id = $4"
		args = append(args, *employeeID)
	}

	commandTag, err := q.Exec(ctx, "DELETE FROM attendance_records WHERE "+baseWhere, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
