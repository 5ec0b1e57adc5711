package report

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestAggregatePeriod_SumsResolvedRecords(t *testing.T) {
	records := []attendance.Record{
		{RegularHours: decimal.NewFromInt(8), OTHours: decimal.NewFromInt(2)},
		{RegularHours: decimal.NewFromInt(8)},
		{WeekendOTHours: decimal.NewFromFloat(4.5)},
	}

	totals := aggregatePeriod("emp-1", records, nil)

	assert.Equal(t, "16.00", totals.RegularHours.Effective)
	assert.Equal(t, "2.00", totals.OTHours.Effective)
	assert.Equal(t, "4.50", totals.WeekendOTHours.Effective)
	assert.Equal(t, "0.00", totals.StatHolidayHours.Effective)
	assert.Equal(t, 3, totals.RecordCount)
	assert.False(t, totals.HasPeriodOverride)
}

func TestAggregatePeriod_RecordOverridesResolveBeforeSumming(t *testing.T) {
	records := []attendance.Record{
		{RegularHours: decimal.NewFromInt(8), OverrideRegularHours: decimalPtr(6)},
		{RegularHours: decimal.NewFromInt(8)},
	}

	totals := aggregatePeriod("emp-1", records, nil)

	assert.Equal(t, "14.00", totals.RegularHours.Effective)
}

func TestAggregatePeriod_PeriodOverrideSupersedesPerBucket(t *testing.T) {
	records := []attendance.Record{
		{RegularHours: decimal.NewFromInt(8), OTHours: decimal.NewFromInt(1)},
		{RegularHours: decimal.NewFromInt(8), OTHours: decimal.NewFromInt(1)},
	}
	reason := "agreed adjustment"
	override := &periodoverride.PeriodOverride{
		OverrideRegularHours: decimalPtr(15),
		Reason:               &reason,
	}

	totals := aggregatePeriod("emp-1", records, override)

	assert.Equal(t, "15.00", totals.RegularHours.Effective)
	require.NotNil(t, totals.RegularHours.Was)
	assert.Equal(t, "16.00", *totals.RegularHours.Was)

	// Buckets without a period override keep the summed value
	assert.Equal(t, "2.00", totals.OTHours.Effective)
	assert.Nil(t, totals.OTHours.Was)

	assert.True(t, totals.HasPeriodOverride)
	require.NotNil(t, totals.OverrideReason)
	assert.Equal(t, "agreed adjustment", *totals.OverrideReason)
}

func TestAggregatePeriod_ZeroPeriodOverrideIsReal(t *testing.T) {
	records := []attendance.Record{
		{OTHours: decimal.NewFromInt(3)},
	}
	override := &periodoverride.PeriodOverride{OverrideOTHours: decimalPtr(0)}

	totals := aggregatePeriod("emp-1", records, override)

	assert.Equal(t, "0.00", totals.OTHours.Effective)
	require.NotNil(t, totals.OTHours.Was)
	assert.Equal(t, "3.00", *totals.OTHours.Was)
}

func TestAggregatePeriod_NoRecords(t *testing.T) {
	override := &periodoverride.PeriodOverride{OverrideRegularHours: decimalPtr(40)}

	totals := aggregatePeriod("emp-1", nil, override)

	assert.Equal(t, 0, totals.RecordCount)
	assert.Equal(t, "40.00", totals.RegularHours.Effective)
	require.NotNil(t, totals.RegularHours.Was)
	assert.Equal(t, "0.00", *totals.RegularHours.Was)
}
