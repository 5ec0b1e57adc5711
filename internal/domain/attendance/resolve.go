package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resolved is one hour bucket carrying both the calculated value and an
// optional override. An override of exactly zero is a real override;
// only a nil pointer means "no override".
type Resolved struct {
	Calculated decimal.Decimal
	Override   *decimal.Decimal
}

// Effective returns the value payroll uses: the override when set,
// otherwise the calculated value.
func (v Resolved) Effective() decimal.Decimal {
	if v.Override != nil {
		return *v.Override
	}
	return v.Calculated
}

// IsOverridden reports whether an override is active for this bucket.
func (v Resolved) IsOverridden() bool {
	return v.Override != nil
}

// EffectiveRecord is the read-time view of a Record after override
// resolution. It is never persisted.
type EffectiveRecord struct {
	Record

	Regular     Resolved
	OT          Resolved
	WeekendOT   Resolved
	StatHoliday Resolved
}

// Resolve applies the override layer field by field. Each bucket resolves
// independently; overriding one never bleeds into another.
func (r Record) Resolve() EffectiveRecord {
	return EffectiveRecord{
		Record:      r,
		Regular:     Resolved{Calculated: r.RegularHours, Override: r.OverrideRegularHours},
		OT:          Resolved{Calculated: r.OTHours, Override: r.OverrideOTHours},
		WeekendOT:   Resolved{Calculated: r.WeekendOTHours, Override: r.OverrideWeekendOTHours},
		StatHoliday: Resolved{Calculated: r.StatHolidayHours, Override: r.OverrideStatHolidayHours},
	}
}

// EffectiveCheckIn returns the override punch when set, else the rounded
// punch, else the raw punch.
func (e EffectiveRecord) EffectiveCheckIn() *time.Time {
	if e.OverrideCheckIn != nil {
		return e.OverrideCheckIn
	}
	if e.RoundedCheckIn != nil {
		return e.RoundedCheckIn
	}
	return e.CheckIn
}

// EffectiveCheckOut returns the override punch when set, else the rounded
// punch, else the raw punch.
func (e EffectiveRecord) EffectiveCheckOut() *time.Time {
	if e.OverrideCheckOut != nil {
		return e.OverrideCheckOut
	}
	if e.RoundedCheckOut != nil {
		return e.RoundedCheckOut
	}
	return e.CheckOut
}
