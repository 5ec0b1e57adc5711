package report

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// Filter scopes a report to one pay period, optionally to one employee.
type Filter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodStart string  `json:"pay_period_start"`
	PeriodEnd   string  `json:"pay_period_end"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(f.PeriodStart)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must be in YYYY-MM-DD format",
		})
	}
	end, endValid := validator.IsValidDate(f.PeriodEnd)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end must be in YYYY-MM-DD format",
		})
	}
	if startValid && endValid && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must not be after pay_period_end",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BucketTotal is one period bucket: the final number payroll uses plus
// the pre-override sum when a period override superseded it.
type BucketTotal struct {
	Effective string  `json:"effective"`
	Was       *string `json:"was,omitempty"`
}

// PeriodTotals is one employee's reconciled pay period.
type PeriodTotals struct {
	EmployeeID       string      `json:"employee_id"`
	EmployeeName     string      `json:"employee_name,omitempty"`
	PeriodStart      string      `json:"pay_period_start"`
	PeriodEnd        string      `json:"pay_period_end"`
	RegularHours     BucketTotal `json:"regular_hours"`
	OTHours          BucketTotal `json:"ot_hours"`
	WeekendOTHours   BucketTotal `json:"weekend_ot_hours"`
	StatHolidayHours BucketTotal `json:"stat_holiday_hours"`
	RecordCount      int         `json:"record_count"`
	HasPeriodOverride bool       `json:"has_period_override"`
	OverrideReason   *string     `json:"override_reason,omitempty"`
}

// DetailRow is one line of the detailed report: either an employee-day
// or a period subtotal row closing out an employee's section.
type DetailRow struct {
	RowType string                     `json:"row_type"` // "day" or "subtotal"
	Day     *attendance.RecordResponse `json:"day,omitempty"`
	Subtotal *PeriodTotals             `json:"subtotal,omitempty"`
}

type SummaryResponse struct {
	PeriodStart string         `json:"pay_period_start"`
	PeriodEnd   string         `json:"pay_period_end"`
	Rows        []PeriodTotals `json:"rows"`
}

type DetailedResponse struct {
	PeriodStart string      `json:"pay_period_start"`
	PeriodEnd   string      `json:"pay_period_end"`
	Rows        []DetailRow `json:"rows"`
}
