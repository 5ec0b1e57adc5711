package periodoverride

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodOverride is a subtotal-level override for one employee's pay
// period. At most one exists per (employee, company, period) tuple; each
// hour field independently supersedes the summed record values when set.
type PeriodOverride struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time

	OverrideRegularHours     *decimal.Decimal
	OverrideOTHours          *decimal.Decimal
	OverrideWeekendOTHours   *decimal.Decimal
	OverrideStatHolidayHours *decimal.Decimal
	Reason                   *string

	PeriodNumber int
	Year         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAnyOverride reports whether at least one hour field is set.
func (o PeriodOverride) HasAnyOverride() bool {
	return o.OverrideRegularHours != nil ||
		o.OverrideOTHours != nil ||
		o.OverrideWeekendOTHours != nil ||
		o.OverrideStatHolidayHours != nil
}
