package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() *Calculator {
	return NewCalculator(decimal.NewFromInt(8), decimal.NewFromInt(8))
}

func punchPair(t *testing.T, date, in, out string) (*time.Time, *time.Time) {
	t.Helper()
	checkIn, err := time.Parse("2006-01-02 15:04:05", date+" "+in)
	require.NoError(t, err)
	checkOut, err := time.Parse("2006-01-02 15:04:05", date+" "+out)
	require.NoError(t, err)
	return &checkIn, &checkOut
}

func TestCalculate_WeekdaySplitsRegularAndOT(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-02", "09:00:00", "19:30:00") // Monday, 10.5h

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.Equal(t, "8.00", buckets.Regular.StringFixed(2))
	assert.Equal(t, "2.50", buckets.OT.StringFixed(2))
	assert.True(t, buckets.WeekendOT.IsZero())
	assert.True(t, buckets.StatHoliday.IsZero())
}

func TestCalculate_WeekdayHalfHourOvertime(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2024-06-03", "09:00:00", "17:30:00") // Monday, 8.5h

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.Equal(t, "8.00", buckets.Regular.StringFixed(2))
	assert.Equal(t, "0.50", buckets.OT.StringFixed(2))
	assert.True(t, buckets.WeekendOT.IsZero())
	assert.True(t, buckets.StatHoliday.IsZero())
}

func TestCalculate_WeekdayUnderStandardHasNoOT(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-02", "09:00:00", "16:45:00") // 7.75h

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.Equal(t, "7.75", buckets.Regular.StringFixed(2))
	assert.True(t, buckets.OT.IsZero())
}

func TestCalculate_WeekendHoursAreAllWeekendOT(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-07", "10:00:00", "13:00:00") // Saturday

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekend})

	require.NoError(t, err)
	assert.True(t, buckets.Regular.IsZero())
	assert.True(t, buckets.OT.IsZero())
	assert.Equal(t, "3.00", buckets.WeekendOT.StringFixed(2))
}

func TestCalculate_StatHolidayWorkedHours(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-12-25", "09:00:00", "14:30:00")

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassStatHoliday})

	require.NoError(t, err)
	assert.Equal(t, "5.50", buckets.StatHoliday.StringFixed(2))
	assert.True(t, buckets.Regular.IsZero())
}

func TestCalculate_StatHolidayWithoutPunchesGetsEntitlement(t *testing.T) {
	calc := newTestCalculator()
	entitlement := decimal.NewFromFloat(7.5)

	buckets, err := calc.Calculate(nil, nil, DayContext{
		Class:            attendance.DayClassStatHoliday,
		EntitlementHours: &entitlement,
	})

	require.NoError(t, err)
	assert.Equal(t, "7.50", buckets.StatHoliday.StringFixed(2))
}

func TestCalculate_StatHolidayWithoutEntitlementUsesDefault(t *testing.T) {
	calc := newTestCalculator()

	buckets, err := calc.Calculate(nil, nil, DayContext{Class: attendance.DayClassStatHoliday})

	require.NoError(t, err)
	assert.Equal(t, "8.00", buckets.StatHoliday.StringFixed(2))
}

func TestCalculate_LeaveWithoutPunchesFillsRegular(t *testing.T) {
	calc := newTestCalculator()

	buckets, err := calc.Calculate(nil, nil, DayContext{Class: attendance.DayClassLeave})

	require.NoError(t, err)
	assert.Equal(t, "8.00", buckets.Regular.StringFixed(2))
	assert.True(t, buckets.OT.IsZero())
}

func TestCalculate_LeaveWithPunchesComputesAsWeekday(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-02", "09:00:00", "18:00:00") // 9h

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassLeave})

	require.NoError(t, err)
	assert.Equal(t, "8.00", buckets.Regular.StringFixed(2))
	assert.Equal(t, "1.00", buckets.OT.StringFixed(2))
}

func TestCalculate_WeekdayWithoutPunchesIsZero(t *testing.T) {
	calc := newTestCalculator()

	buckets, err := calc.Calculate(nil, nil, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.True(t, buckets.Regular.IsZero())
	assert.True(t, buckets.OT.IsZero())
	assert.True(t, buckets.WeekendOT.IsZero())
	assert.True(t, buckets.StatHoliday.IsZero())
}

func TestCalculate_OneSidedPunchPairFails(t *testing.T) {
	calc := newTestCalculator()
	in, _ := punchPair(t, "2026-03-02", "09:00:00", "17:00:00")

	_, err := calc.Calculate(in, nil, DayContext{Class: attendance.DayClassWeekday})
	assert.ErrorIs(t, err, attendance.ErrIncompletePunchPair)

	_, err = calc.Calculate(nil, in, DayContext{Class: attendance.DayClassWeekday})
	assert.ErrorIs(t, err, attendance.ErrIncompletePunchPair)
}

func TestCalculate_CheckOutBeforeCheckInFails(t *testing.T) {
	calc := newTestCalculator()
	out, in := punchPair(t, "2026-03-02", "09:00:00", "17:00:00")

	_, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})
	assert.ErrorIs(t, err, attendance.ErrNegativeWorkedTime)
}

func TestCalculate_ZeroLengthShiftIsZeroHours(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-02", "09:00:00", "09:00:00")

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.True(t, buckets.Regular.IsZero())
	assert.True(t, buckets.OT.IsZero())
}

func TestCalculate_RoundsToTwoDecimals(t *testing.T) {
	calc := newTestCalculator()
	in, out := punchPair(t, "2026-03-02", "09:00:00", "16:20:00") // 7h20m = 7.333...

	buckets, err := calc.Calculate(in, out, DayContext{Class: attendance.DayClassWeekday})

	require.NoError(t, err)
	assert.Equal(t, "7.33", buckets.Regular.StringFixed(2))
}
