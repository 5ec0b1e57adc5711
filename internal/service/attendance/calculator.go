package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Buckets holds the four calculated hour buckets for one day.
type Buckets struct {
	Regular     decimal.Decimal
	OT          decimal.Decimal
	WeekendOT   decimal.Decimal
	StatHoliday decimal.Decimal
}

// DayContext carries the external classification the calculator cannot
// derive itself: what kind of day this is and, for holiday and leave
// days, the entitlement hours the calendar grants.
type DayContext struct {
	Class            attendance.DayClass
	EntitlementHours *decimal.Decimal
}

// Calculator maps one punch pair plus day classification to base hour
// buckets. It is pure: same inputs, same buckets, no side effects.
// All outputs are rounded to two decimal places so calculation and
// redisplay round-trip stably.
type Calculator struct {
	standardDailyHours      decimal.Decimal
	defaultEntitlementHours decimal.Decimal
}

func NewCalculator(standardDailyHours, defaultEntitlementHours decimal.Decimal) *Calculator {
	return &Calculator{
		standardDailyHours:      standardDailyHours,
		defaultEntitlementHours: defaultEntitlementHours,
	}
}

// Calculate produces the base buckets for one day.
//
// Worked days split by classification: weekday hours fill regular up to
// the standard shift with the excess as overtime, weekend hours are all
// weekend overtime, stat-holiday hours are all stat-holiday hours. A
// leave day with punches is computed as a weekday (worked time wins
// over the leave entitlement).
//
// Days without punches yield the entitlement for stat-holiday and leave
// days, and zero buckets otherwise. A single-sided punch pair is an
// invalid state callers must reject before storage; it is reported here
// so recalculation can surface legacy bad rows per record.
func (c *Calculator) Calculate(checkIn, checkOut *time.Time, day DayContext) (Buckets, error) {
	if (checkIn == nil) != (checkOut == nil) {
		return Buckets{}, attendance.ErrIncompletePunchPair
	}

	if checkIn == nil {
		switch day.Class {
		case attendance.DayClassStatHoliday:
			return Buckets{StatHoliday: c.entitlement(day)}, nil
		case attendance.DayClassLeave:
			return Buckets{Regular: c.entitlement(day)}, nil
		}
		return Buckets{}, nil
	}

	if checkOut.Before(*checkIn) {
		return Buckets{}, attendance.ErrNegativeWorkedTime
	}

	worked := decimal.NewFromFloat(checkOut.Sub(*checkIn).Hours()).Round(2)

	switch day.Class {
	case attendance.DayClassWeekend:
		return Buckets{WeekendOT: worked}, nil
	case attendance.DayClassStatHoliday:
		return Buckets{StatHoliday: worked}, nil
	}

	regular := decimal.Min(worked, c.standardDailyHours).Round(2)
	return Buckets{
		Regular: regular,
		OT:      worked.Sub(regular).Round(2),
	}, nil
}

func (c *Calculator) entitlement(day DayContext) decimal.Decimal {
	if day.EntitlementHours != nil {
		return day.EntitlementHours.Round(2)
	}
	return c.defaultEntitlementHours.Round(2)
}
