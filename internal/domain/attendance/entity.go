package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayClass is the classification driving which hour buckets a day fills.
type DayClass string

const (
	DayClassWeekday     DayClass = "weekday"
	DayClassWeekend     DayClass = "weekend"
	DayClassStatHoliday DayClass = "stat_holiday"
	DayClassLeave       DayClass = "leave"
)

// Record is one attendance day for one employee. The four base buckets are
// derived data owned by the calculator; the override layer belongs to
// payroll staff and is never touched by recalculation.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	// Raw punches. Both set or both nil for a worked day.
	CheckIn         *time.Time
	CheckOut        *time.Time
	RoundedCheckIn  *time.Time
	RoundedCheckOut *time.Time

	// Calculated base buckets
	RegularHours     decimal.Decimal
	OTHours          decimal.Decimal
	WeekendOTHours   decimal.Decimal
	StatHolidayHours decimal.Decimal

	// Override layer, all independently nullable
	OverrideCheckIn          *time.Time
	OverrideCheckOut         *time.Time
	OverrideRegularHours     *decimal.Decimal
	OverrideOTHours          *decimal.Decimal
	OverrideWeekendOTHours   *decimal.Decimal
	OverrideStatHolidayHours *decimal.Decimal
	TimeEditReason           *string
	HoursEditReason          *string
	Remarks                  *string

	// Context supplied by external calendars. At most one of these is
	// set; writes reject records carrying both.
	LeaveType       *string
	StatHolidayName *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// IsManualOverride reports whether any override field is set.
func (r Record) IsManualOverride() bool {
	return r.OverrideCheckIn != nil ||
		r.OverrideCheckOut != nil ||
		r.OverrideRegularHours != nil ||
		r.OverrideOTHours != nil ||
		r.OverrideWeekendOTHours != nil ||
		r.OverrideStatHolidayHours != nil
}

// DayClass classifies the record's day. Holiday and leave context win over
// the weekday/weekend split derived from the calendar date.
func (r Record) DayClass() DayClass {
	if r.StatHolidayName != nil {
		return DayClassStatHoliday
	}
	if r.LeaveType != nil {
		return DayClassLeave
	}
	switch r.Date.Weekday() {
	case time.Saturday, time.Sunday:
		return DayClassWeekend
	}
	return DayClassWeekday
}

// HasPunchPair reports whether both raw punches are present.
func (r Record) HasPunchPair() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}
