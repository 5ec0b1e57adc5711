package report

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// aggregatePeriod folds one employee's resolved records into period
// totals and applies the period override on top. Record-level overrides
// resolve first; each period bucket then independently supersedes its
// sum when set. The pre-override sum is kept as "was" for audit display.
func aggregatePeriod(employeeID string, records []attendance.Record, override *periodoverride.PeriodOverride) report.PeriodTotals {
	var regular, ot, weekendOT, statHoliday decimal.Decimal

	for _, record := range records {
		effective := record.Resolve()
		regular = regular.Add(effective.Regular.Effective())
		ot = ot.Add(effective.OT.Effective())
		weekendOT = weekendOT.Add(effective.WeekendOT.Effective())
		statHoliday = statHoliday.Add(effective.StatHoliday.Effective())
	}

	totals := report.PeriodTotals{
		EmployeeID:  employeeID,
		RecordCount: len(records),
	}

	if override != nil {
		totals.HasPeriodOverride = override.HasAnyOverride()
		totals.OverrideReason = override.Reason
		totals.RegularHours = applyOverride(regular, override.OverrideRegularHours)
		totals.OTHours = applyOverride(ot, override.OverrideOTHours)
		totals.WeekendOTHours = applyOverride(weekendOT, override.OverrideWeekendOTHours)
		totals.StatHolidayHours = applyOverride(statHoliday, override.OverrideStatHolidayHours)
		return totals
	}

	totals.RegularHours = report.BucketTotal{Effective: regular.StringFixed(2)}
	totals.OTHours = report.BucketTotal{Effective: ot.StringFixed(2)}
	totals.WeekendOTHours = report.BucketTotal{Effective: weekendOT.StringFixed(2)}
	totals.StatHolidayHours = report.BucketTotal{Effective: statHoliday.StringFixed(2)}
	return totals
}

func applyOverride(sum decimal.Decimal, override *decimal.Decimal) report.BucketTotal {
	if override == nil {
		return report.BucketTotal{Effective: sum.StringFixed(2)}
	}
	was := sum.StringFixed(2)
	return report.BucketTotal{
		Effective: override.StringFixed(2),
		Was:       &was,
	}
}
