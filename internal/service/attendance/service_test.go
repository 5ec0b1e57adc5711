package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordStore struct {
	records  []attendance.Record
	existing map[string]struct{}
	updated  []attendance.Record
	created  []attendance.Record
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (s *stubRecordStore) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if _, ok := s.existing[recordKey(record.EmployeeID, record.Date)]; ok {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}
	s.created = append(s.created, record)
	return record, nil
}

func (s *stubRecordStore) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	for _, r := range s.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (s *stubRecordStore) Exists(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	_, ok := s.existing[recordKey(employeeID, date)]
	return ok, nil
}

func (s *stubRecordStore) ListRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) ([]attendance.Record, error) {
	return s.records, nil
}

func (s *stubRecordStore) UpdateOverrides(ctx context.Context, record attendance.Record) error {
	return nil
}

func (s *stubRecordStore) UpdateCalculated(ctx context.Context, record attendance.Record) error {
	s.updated = append(s.updated, record)
	return nil
}

func (s *stubRecordStore) DeleteRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) (int64, error) {
	return 0, nil
}

type stubHolidayRepo struct {
	holidays map[string]calendar.StatHoliday
}

func (s *stubHolidayRepo) InRange(ctx context.Context, companyID string, start, end time.Time) (map[string]calendar.StatHoliday, error) {
	if s.holidays == nil {
		return map[string]calendar.StatHoliday{}, nil
	}
	return s.holidays, nil
}

type stubRoundingRepo struct {
	rule calendar.RoundingRule
}

func (s *stubRoundingRepo) GetByCompany(ctx context.Context, companyID string) (calendar.RoundingRule, error) {
	return s.rule, nil
}

func newRecalcService(store *stubRecordStore, holidays map[string]calendar.StatHoliday) *ServiceImpl {
	return &ServiceImpl{
		repo:         store,
		holidayRepo:  &stubHolidayRepo{holidays: holidays},
		roundingRepo: &stubRoundingRepo{},
		calc:         newTestCalculator(),
	}
}

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func storedRecord(t *testing.T, id, date string) attendance.Record {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return attendance.Record{
		ID:         id,
		EmployeeID: "emp-1",
		CompanyID:  "co-1",
		Date:       day,
	}
}

func TestRecalculateForCompany_FoldCounts(t *testing.T) {
	worked := storedRecord(t, "rec-1", "2026-03-02") // Monday
	worked.CheckIn, worked.CheckOut = punchPair(t, "2026-03-02", "09:00:00", "19:30:00")

	empty := storedRecord(t, "rec-2", "2026-03-03")

	oneSided := storedRecord(t, "rec-3", "2026-03-04")
	in, _ := punchPair(t, "2026-03-04", "08:00:00", "08:00:00")
	oneSided.CheckIn = in
	oneSided.RoundedCheckIn = in

	store := &stubRecordStore{records: []attendance.Record{worked, empty, oneSided}}
	svc := newRecalcService(store, nil)

	start, _ := time.Parse("2006-01-02", "2026-03-01")
	end, _ := time.Parse("2006-01-02", "2026-03-15")
	result, err := svc.RecalculateForCompany(context.Background(), "co-1", start, end)

	require.NoError(t, err)
	assert.Equal(t, 1, result.RecalculatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "emp-1", result.Errors[0].EmployeeID)
	assert.Equal(t, "2026-03-04", result.Errors[0].Date)
	assert.NotEmpty(t, result.Errors[0].Message)

	// Only the worked record reached the store.
	require.Len(t, store.updated, 1)
	assert.Equal(t, "rec-1", store.updated[0].ID)
	assert.Equal(t, "8.00", store.updated[0].RegularHours.StringFixed(2))
	assert.Equal(t, "2.50", store.updated[0].OTHours.StringFixed(2))
}

func TestRecalculateForCompany_LeavesOverridesUntouched(t *testing.T) {
	record := storedRecord(t, "rec-1", "2026-03-02")
	record.CheckIn, record.CheckOut = punchPair(t, "2026-03-02", "09:00:00", "17:00:00")
	record.OverrideRegularHours = decimalPtr(6)
	reason := "approved adjustment"
	record.HoursEditReason = &reason

	store := &stubRecordStore{records: []attendance.Record{record}}
	svc := newRecalcService(store, nil)

	start, _ := time.Parse("2006-01-02", "2026-03-01")
	end, _ := time.Parse("2006-01-02", "2026-03-15")
	result, err := svc.RecalculateForCompany(context.Background(), "co-1", start, end)

	require.NoError(t, err)
	assert.Equal(t, 1, result.RecalculatedCount)

	require.Len(t, store.updated, 1)
	updated := store.updated[0]
	assert.Equal(t, "8.00", updated.RegularHours.StringFixed(2))
	require.NotNil(t, updated.OverrideRegularHours)
	assert.Equal(t, "6.00", updated.OverrideRegularHours.StringFixed(2))
	assert.Equal(t, &reason, updated.HoursEditReason)
}

func TestRecalculateForCompany_HolidayCalendarWinsOverStoredClass(t *testing.T) {
	// Stored as a plain weekday without punches; a holiday added to the
	// calendar after the fact re-derives it from entitlement.
	record := storedRecord(t, "rec-1", "2026-07-01")

	entitlement := decimal.NewFromFloat(7.5)
	holidays := map[string]calendar.StatHoliday{
		"2026-07-01": {Date: record.Date, Name: "Canada Day", EntitlementHours: entitlement},
	}

	store := &stubRecordStore{records: []attendance.Record{record}}
	svc := newRecalcService(store, holidays)

	start, _ := time.Parse("2006-01-02", "2026-07-01")
	end, _ := time.Parse("2006-01-02", "2026-07-31")
	result, err := svc.RecalculateForCompany(context.Background(), "co-1", start, end)

	require.NoError(t, err)
	assert.Equal(t, 1, result.RecalculatedCount)

	require.Len(t, store.updated, 1)
	assert.Equal(t, "7.50", store.updated[0].StatHolidayHours.StringFixed(2))
	assert.True(t, store.updated[0].RegularHours.IsZero())
}
