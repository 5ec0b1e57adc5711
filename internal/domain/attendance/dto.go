package attendance

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// LIST / GET DTOs
// ========================================

// ListFilter scopes a listing to one pay period. Period bounds are
// mandatory; the engine refuses to return unscoped data.
type ListFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodStart string  `json:"pay_period_start"`
	PeriodEnd   string  `json:"pay_period_end"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.PeriodStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start is required",
		})
	} else if _, valid := validator.IsValidDate(f.PeriodStart); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(f.PeriodEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end is required",
		})
	} else if _, valid := validator.IsValidDate(f.PeriodEnd); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end must be in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 {
		start, _ := validator.IsValidDate(f.PeriodStart)
		end, _ := validator.IsValidDate(f.PeriodEnd)
		if start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "pay_period_start",
				Message: "pay_period_start must not be after pay_period_end",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// CREATE / UPDATE DTOs
// ========================================

// CreateRequest creates one attendance record from manual entry. A timed
// entry supplies both punches; a leave or holiday day supplies neither.
type CreateRequest struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`      // YYYY-MM-DD
	CheckIn         *string `json:"check_in"`  // HH:MM:SS
	CheckOut        *string `json:"check_out"` // HH:MM:SS
	LeaveType       *string `json:"leave_type,omitempty"`
	StatHolidayName *string `json:"stat_holiday_name,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	hasIn := r.CheckIn != nil && !validator.IsEmpty(*r.CheckIn)
	hasOut := r.CheckOut != nil && !validator.IsEmpty(*r.CheckOut)
	if hasIn != hasOut {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "incomplete time pair: both check-in and check-out are required",
		})
	}
	if hasIn {
		if _, valid := validator.IsValidTimeOfDay(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:MM:SS format",
			})
		}
	}
	if hasOut {
		if _, valid := validator.IsValidTimeOfDay(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:MM:SS format",
			})
		}
	}

	if r.LeaveType != nil && r.StatHolidayName != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type and stat_holiday_name cannot both be set",
		})
	}

	if r.Remarks != nil && !validator.MaxLength(*r.Remarks, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateOverridesRequest edits only the override layer of a record. Base
// buckets never change through this path. Clear flags null out a whole
// override group, which is how an operator reverts to calculated values.
type UpdateOverridesRequest struct {
	ID                       string           `json:"-"`
	OverrideCheckIn          *string          `json:"override_check_in,omitempty"`  // HH:MM:SS
	OverrideCheckOut         *string          `json:"override_check_out,omitempty"` // HH:MM:SS
	OverrideRegularHours     *decimal.Decimal `json:"override_regular_hours,omitempty"`
	OverrideOTHours          *decimal.Decimal `json:"override_ot_hours,omitempty"`
	OverrideWeekendOTHours   *decimal.Decimal `json:"override_weekend_ot_hours,omitempty"`
	OverrideStatHolidayHours *decimal.Decimal `json:"override_stat_holiday_hours,omitempty"`
	TimeEditReason           *string          `json:"time_edit_reason,omitempty"`
	HoursEditReason          *string          `json:"hours_edit_reason,omitempty"`
	Remarks                  *string          `json:"remarks,omitempty"`
	ClearTimeOverride        bool             `json:"clear_time_override,omitempty"`
	ClearHoursOverride       bool             `json:"clear_hours_override,omitempty"`
}

func (r *UpdateOverridesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OverrideCheckIn != nil {
		if _, valid := validator.IsValidTimeOfDay(*r.OverrideCheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "override_check_in",
				Message: "override_check_in must be in HH:MM:SS format",
			})
		}
	}
	if r.OverrideCheckOut != nil {
		if _, valid := validator.IsValidTimeOfDay(*r.OverrideCheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "override_check_out",
				Message: "override_check_out must be in HH:MM:SS format",
			})
		}
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

	if r.ClearTimeOverride && (r.OverrideCheckIn != nil || r.OverrideCheckOut != nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "clear_time_override",
			Message: "clear_time_override cannot be combined with new override times",
		})
	}
	if r.ClearHoursOverride {
		for _, f := range hourFields {
			if f.value != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "clear_hours_override",
					Message: "clear_hours_override cannot be combined with new override hours",
				})
				break
			}
		}
	}

	if r.TimeEditReason != nil && !validator.MaxLength(*r.TimeEditReason, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_edit_reason",
			Message: "time_edit_reason must not exceed 255 characters",
		})
	}
	if r.HoursEditReason != nil && !validator.MaxLength(*r.HoursEditReason, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_edit_reason",
			Message: "hours_edit_reason must not exceed 255 characters",
		})
	}
	if r.Remarks != nil && !validator.MaxLength(*r.Remarks, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RECALCULATION DTOs
// ========================================

type RecalculateRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
}

func (r *RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(r.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordError identifies one record that failed during a batch pass.
type RecordError struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Message    string `json:"message"`
}

// RecalcResult is the fold outcome of a recalculation run. One record's
// failure never aborts the batch.
type RecalcResult struct {
	RecalculatedCount int           `json:"recalculated_count"`
	SkippedCount      int           `json:"skipped_count"`
	ErrorCount        int           `json:"error_count"`
	Errors            []RecordError `json:"errors"`
}

// ========================================
// IMPORT DTOs
// ========================================

// CSVRow is one uploaded batch row. All fields arrive as strings and are
// classified before any parsing result is trusted.
type CSVRow struct {
	EmployeeID       string `csv:"employee_id"`
	Date             string `csv:"date"`
	CheckIn          string `csv:"check_in"`
	CheckOut         string `csv:"check_out"`
	RegularHours     string `csv:"regular_hours"`
	OTHours          string `csv:"ot_hours"`
	WeekendOTHours   string `csv:"weekend_ot_hours"`
	StatHolidayHours string `csv:"stat_holiday_hours"`
	LeaveType        string `csv:"leave_type"`
	Remarks          string `csv:"remarks"`
}

// Row classification statuses
const (
	RowStatusImportable = "importable"
	RowStatusDuplicate  = "duplicate"
	RowStatusInvalid    = "invalid"
)

// Row entry kinds
const (
	RowKindTimed     = "timed"
	RowKindHoursOnly = "hours_only"
)

// RowClassification is the preview verdict for one batch row.
type RowClassification struct {
	Line       int    `json:"line"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message,omitempty"`
}

type PreviewResult struct {
	ImportableCount int                 `json:"importable_count"`
	DuplicateCount  int                 `json:"duplicate_count"`
	InvalidCount    int                 `json:"invalid_count"`
	Rows            []RowClassification `json:"rows"`
}

// RowError identifies one batch row that was rejected or skipped.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	BatchID       string     `json:"batch_id"`
	ImportedCount int        `json:"imported_count"`
	SkippedCount  int        `json:"skipped_count"`
	ErrorCount    int        `json:"error_count"`
	SkippedRows   []RowError `json:"skipped_rows"`
	Errors        []RowError `json:"errors"`
}

// ========================================
// DELETION DTOs
// ========================================

type DeleteRangeRequest struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *DeleteRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(r.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeleteRangeResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ========================================
// RESPONSE DTOs
// ========================================

// BucketResponse shows a bucket's effective value next to the calculated
// value it may be overriding, for audit display.
type BucketResponse struct {
	Effective  string  `json:"effective"`
	Calculated string  `json:"calculated"`
	Override   *string `json:"override,omitempty"`
}

type RecordResponse struct {
	ID                string         `json:"id,omitempty"`
	EmployeeID        string         `json:"employee_id"`
	EmployeeName      *string        `json:"employee_name,omitempty"`
	Date              string         `json:"date"`
	DayClass          string         `json:"day_class"`
	CheckIn           *string        `json:"check_in,omitempty"`
	CheckOut          *string        `json:"check_out,omitempty"`
	RoundedCheckIn    *string        `json:"rounded_check_in,omitempty"`
	RoundedCheckOut   *string        `json:"rounded_check_out,omitempty"`
	EffectiveCheckIn  *string        `json:"effective_check_in,omitempty"`
	EffectiveCheckOut *string        `json:"effective_check_out,omitempty"`
	RegularHours      BucketResponse `json:"regular_hours"`
	OTHours           BucketResponse `json:"ot_hours"`
	WeekendOTHours    BucketResponse `json:"weekend_ot_hours"`
	StatHolidayHours  BucketResponse `json:"stat_holiday_hours"`
	IsManualOverride  bool           `json:"is_manual_override"`
	TimeEditReason    *string        `json:"time_edit_reason,omitempty"`
	HoursEditReason   *string        `json:"hours_edit_reason,omitempty"`
	Remarks           *string        `json:"remarks,omitempty"`
	LeaveType         *string        `json:"leave_type,omitempty"`
	StatHolidayName   *string        `json:"stat_holiday_name,omitempty"`
	IsVirtual         bool           `json:"is_virtual,omitempty"`
	CreatedAt         string         `json:"created_at,omitempty"`
	UpdatedAt         string         `json:"updated_at,omitempty"`
}

type ListResponse struct {
	PeriodStart string           `json:"pay_period_start"`
	PeriodEnd   string           `json:"pay_period_end"`
	Records     []RecordResponse `json:"records"`
}
