package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The pay_periods, stat_holidays and punch_rounding_rules tables are
// maintained by the surrounding dashboard; the engine only reads them.

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) calendar.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}

// FindByDate implements calendar.PayPeriodRepository.
func (r *payPeriodRepository) FindByDate(ctx context.Context, companyID string, date time.Time) (calendar.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, year, number, start_date, end_date
		FROM pay_periods
		WHERE company_id = $1
		  AND start_date <= $2
		  AND end_date >= $2
	`

	var p calendar.PayPeriod
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&p.ID, &p.CompanyID, &p.Year, &p.Number, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.PayPeriod{}, calendar.ErrPayPeriodNotFound
		}
		return calendar.PayPeriod{}, fmt.Errorf("failed to find pay period: %w", err)
	}

	return p, nil
}

// ListOpenPeriods implements calendar.PayPeriodRepository.
func (r *payPeriodRepository) ListOpenPeriods(ctx context.Context, date time.Time) ([]calendar.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, year, number, start_date, end_date
		FROM pay_periods
		WHERE start_date <= $1
		  AND end_date >= $1
		ORDER BY company_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query open pay periods: %w", err)
	}
	defer rows.Close()

	var periods []calendar.PayPeriod
	for rows.Next() {
		var p calendar.PayPeriod
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Year, &p.Number, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepository{db: db}
}

// InRange implements calendar.HolidayRepository.
func (r *holidayRepository) InRange(ctx context.Context, companyID string, start, end time.Time) (map[string]calendar.StatHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, entitlement_hours
		FROM stat_holidays
		WHERE company_id = $1
		  AND date >= $2
		  AND date <= $3
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query stat holidays: %w", err)
	}
	defer rows.Close()

	holidays := make(map[string]calendar.StatHoliday)
	for rows.Next() {
		var h calendar.StatHoliday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.EntitlementHours); err != nil {
			return nil, fmt.Errorf("failed to scan stat holiday: %w", err)
		}
		holidays[h.Date.Format("2006-01-02")] = h
	}

	return holidays, nil
}

type roundingRuleRepository struct {
	db *database.DB
}

func NewRoundingRuleRepository(db *database.DB) calendar.RoundingRuleRepository {
	return &roundingRuleRepository{db: db}
}

// GetByCompany implements calendar.RoundingRuleRepository.
func (r *roundingRuleRepository) GetByCompany(ctx context.Context, companyID string) (calendar.RoundingRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, interval_minutes
		FROM punch_rounding_rules
		WHERE company_id = $1
	`

	var rule calendar.RoundingRule
	err := q.QueryRow(ctx, query, companyID).Scan(&rule.CompanyID, &rule.IntervalMinutes)
	if err != nil {
		if err == pgx.ErrNoRows {
			// No configured rule means punches are stored as-is
			return calendar.RoundingRule{CompanyID: companyID}, nil
		}
		return calendar.RoundingRule{}, fmt.Errorf("failed to get rounding rule: %w", err)
	}

	return rule, nil
}
