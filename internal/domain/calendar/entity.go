package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod is an externally maintained payroll date range. The engine
// never computes period boundaries itself.
type PayPeriod struct {
	ID        string
	CompanyID string
	Year      int
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether the date falls inside the period.
func (p PayPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// StatHoliday is one statutory holiday with its entitlement hours.
type StatHoliday struct {
	ID               string
	CompanyID        string
	Date             time.Time
	Name             string
	EntitlementHours decimal.Decimal
}

// RoundingRule rounds raw punches to the company's payroll interval.
type RoundingRule struct {
	CompanyID       string
	IntervalMinutes int
}

// Apply rounds t to the nearest interval boundary. A zero interval
// leaves the punch untouched.
func (r RoundingRule) Apply(t time.Time) time.Time {
	if r.IntervalMinutes <= 0 {
		return t
	}
	interval := time.Duration(r.IntervalMinutes) * time.Minute
	return t.Round(interval)
}
