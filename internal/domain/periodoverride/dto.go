package periodoverride

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SaveRequest upserts a period override. ExpectedUpdatedAt carries the
// updated_at the operator last saw; a mismatch on write surfaces
// ErrPeriodOverrideConflict instead of silently merging.
type SaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"pay_period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"pay_period_end"`   // YYYY-MM-DD

	OverrideRegularHours     *decimal.Decimal `json:"override_regular_hours,omitempty"`
	OverrideOTHours          *decimal.Decimal `json:"override_ot_hours,omitempty"`
	OverrideWeekendOTHours   *decimal.Decimal `json:"override_weekend_ot_hours,omitempty"`
	OverrideStatHolidayHours *decimal.Decimal `json:"override_stat_holiday_hours,omitempty"`
	Reason                   *string          `json:"reason,omitempty"`

	PeriodNumber int `json:"period_number"`
	Year         int `json:"year"`

	ExpectedUpdatedAt *string `json:"expected_updated_at,omitempty"` // RFC3339
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startValid := validator.IsValidDate(r.PeriodStart)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must be in YYYY-MM-DD format",
		})
	}
	end, endValid := validator.IsValidDate(r.PeriodEnd)
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

	hourFields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"override_regular_hours", r.OverrideRegularHours},
		{"override_ot_hours", r.OverrideOTHours},
		{"override_weekend_ot_hours", r.OverrideWeekendOTHours},
		{"override_stat_holiday_hours", r.OverrideStatHolidayHours},
	}
	for _, f := range hourFields {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must not be negative",
			})
		}
	}

	if r.Reason != nil && !validator.MaxLength(*r.Reason, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 255 characters",
		})
	}

	if r.PeriodNumber <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_number",
			Message: "period_number must be positive",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// GetRequest looks up the override for one employee-period tuple.
type GetRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"pay_period_start"`
	PeriodEnd   string `json:"pay_period_end"`
}

func (r *GetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, valid := validator.IsValidDate(r.PeriodStart); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must be in YYYY-MM-DD format",
		})
	}
	if _, valid := validator.IsValidDate(r.PeriodEnd); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"pay_period_start"`
	PeriodEnd   string `json:"pay_period_end"`

	OverrideRegularHours     *string `json:"override_regular_hours,omitempty"`
	OverrideOTHours          *string `json:"override_ot_hours,omitempty"`
	OverrideWeekendOTHours   *string `json:"override_weekend_ot_hours,omitempty"`
	OverrideStatHolidayHours *string `json:"override_stat_holiday_hours,omitempty"`
	Reason                   *string `json:"reason,omitempty"`

	PeriodNumber int `json:"period_number"`
	Year         int `json:"year"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
