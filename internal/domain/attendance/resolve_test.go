package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestResolve_OverrideWinsPerBucket(t *testing.T) {
	record := Record{
		RegularHours:         decimal.NewFromInt(8),
		OTHours:              decimal.NewFromInt(2),
		OverrideRegularHours: decimalPtr(7.5),
	}

	effective := record.Resolve()

	assert.Equal(t, "7.50", effective.Regular.Effective().StringFixed(2))
	assert.True(t, effective.Regular.IsOverridden())
	assert.Equal(t, "2.00", effective.OT.Effective().StringFixed(2))
	assert.False(t, effective.OT.IsOverridden())
}

func TestResolve_ZeroOverrideIsARealOverride(t *testing.T) {
	record := Record{
		OTHours:         decimal.NewFromInt(3),
		OverrideOTHours: decimalPtr(0),
		WeekendOTHours:  decimal.NewFromInt(4),
	}

	effective := record.Resolve()

	assert.True(t, effective.OT.IsOverridden())
	assert.Equal(t, "0.00", effective.OT.Effective().StringFixed(2))
	assert.Equal(t, "4.00", effective.WeekendOT.Effective().StringFixed(2))
}

func TestResolve_CalculatedSurvivesUnderOverride(t *testing.T) {
	record := Record{
		RegularHours:         decimal.NewFromInt(8),
		OverrideRegularHours: decimalPtr(6),
	}

	effective := record.Resolve()

	assert.Equal(t, "8.00", effective.Regular.Calculated.StringFixed(2))
	assert.Equal(t, "6.00", effective.Regular.Effective().StringFixed(2))
}

func TestEffectivePunches_PreferOverrideThenRoundedThenRaw(t *testing.T) {
	raw := time.Date(2026, 3, 2, 9, 3, 0, 0, time.UTC)
	rounded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	override := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	record := Record{CheckIn: &raw}
	assert.Equal(t, raw, *record.Resolve().EffectiveCheckIn())

	record.RoundedCheckIn = &rounded
	assert.Equal(t, rounded, *record.Resolve().EffectiveCheckIn())

	record.OverrideCheckIn = &override
	assert.Equal(t, override, *record.Resolve().EffectiveCheckIn())
}

func TestDayClass_HolidayWinsOverLeaveAndWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	leave := "annual"
	holiday := "Company Day"

	record := Record{Date: saturday}
	assert.Equal(t, DayClassWeekend, record.DayClass())

	record.LeaveType = &leave
	assert.Equal(t, DayClassLeave, record.DayClass())

	record.StatHolidayName = &holiday
	assert.Equal(t, DayClassStatHoliday, record.DayClass())
}

func TestIsManualOverride(t *testing.T) {
	record := Record{}
	assert.False(t, record.IsManualOverride())

	record.OverrideStatHolidayHours = decimalPtr(8)
	assert.True(t, record.IsManualOverride())

	punch := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	record = Record{OverrideCheckIn: &punch}
	assert.True(t, record.IsManualOverride())
}

func TestUpdateOverridesRequest_ClearFlagConflicts(t *testing.T) {
	in := "09:00:00"
	req := UpdateOverridesRequest{
		OverrideCheckIn:   &in,
		ClearTimeOverride: true,
	}
	require.Error(t, req.Validate())

	req = UpdateOverridesRequest{
		OverrideRegularHours: decimalPtr(8),
		ClearHoursOverride:   true,
	}
	require.Error(t, req.Validate())

	req = UpdateOverridesRequest{ClearTimeOverride: true, ClearHoursOverride: true}
	require.NoError(t, req.Validate())
}

func TestCreateRequest_RejectsConflictingDayContext(t *testing.T) {
	leave := "annual"
	holiday := "Company Day"
	req := CreateRequest{
		EmployeeID:      "emp-1",
		Date:            "2026-03-02",
		LeaveType:       &leave,
		StatHolidayName: &holiday,
	}

	require.Error(t, req.Validate())
}

func TestListFilter_RequiresPeriodBounds(t *testing.T) {
	filter := ListFilter{}

	var errs validator.ValidationErrors
	require.ErrorAs(t, filter.Validate(), &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "pay_period_start")
	assert.Contains(t, fields, "pay_period_end")
}

func TestDeleteRangeRequest_RejectsReversedRange(t *testing.T) {
	req := DeleteRangeRequest{StartDate: "2026-03-15", EndDate: "2026-03-01"}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "start_date")
}
