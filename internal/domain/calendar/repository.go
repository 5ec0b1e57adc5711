package calendar

import (
	"context"
	"time"
)

// PayPeriodRepository reads the externally maintained pay-period table.
type PayPeriodRepository interface {
	// FindByDate returns the period containing the given date
	FindByDate(ctx context.Context, companyID string, date time.Time) (PayPeriod, error)

	// ListOpenPeriods returns, across all companies, each period
	// containing the given date. Used by the nightly sweep.
	ListOpenPeriods(ctx context.Context, date time.Time) ([]PayPeriod, error)
}

// HolidayRepository reads the externally maintained holiday table.
type HolidayRepository interface {
	// InRange returns holidays keyed by calendar day
	InRange(ctx context.Context, companyID string, start, end time.Time) (map[string]StatHoliday, error)
}

// RoundingRuleRepository reads each company's punch-rounding interval.
type RoundingRuleRepository interface {
	// GetByCompany returns the rule; companies without one get the
	// zero rule (no rounding)
	GetByCompany(ctx context.Context, companyID string) (RoundingRule, error)
}
