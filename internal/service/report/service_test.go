package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceRepo struct {
	records []attendance.Record
}

func (s *stubAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	return record, nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (s *stubAttendanceRepo) Exists(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) ListRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) ([]attendance.Record, error) {
	if employeeID == nil || *employeeID == "" {
		return s.records, nil
	}
	var scoped []attendance.Record
	for _, r := range s.records {
		if r.EmployeeID == *employeeID {
			scoped = append(scoped, r)
		}
	}
	return scoped, nil
}

func (s *stubAttendanceRepo) UpdateOverrides(ctx context.Context, record attendance.Record) error {
	return nil
}

func (s *stubAttendanceRepo) UpdateCalculated(ctx context.Context, record attendance.Record) error {
	return nil
}

func (s *stubAttendanceRepo) DeleteRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) (int64, error) {
	return 0, nil
}

type stubOverrideRepo struct {
	overrides []periodoverride.PeriodOverride
}

func (s *stubOverrideRepo) Get(ctx context.Context, employeeID, companyID string, periodStart, periodEnd time.Time) (periodoverride.PeriodOverride, error) {
	return periodoverride.PeriodOverride{}, periodoverride.ErrPeriodOverrideNotFound
}

func (s *stubOverrideRepo) GetForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]periodoverride.PeriodOverride, error) {
	return s.overrides, nil
}

func (s *stubOverrideRepo) Upsert(ctx context.Context, override periodoverride.PeriodOverride, expectedUpdatedAt *time.Time) (periodoverride.PeriodOverride, error) {
	return override, nil
}

func (s *stubOverrideRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type stubDirectory struct {
	names           map[string]string
	activeIDs       []string
	listActiveCalls int
}

func (s *stubDirectory) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	name, ok := s.names[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, CompanyID: companyID, FullName: name, IsActive: true}, nil
}

func (s *stubDirectory) NamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	found := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := s.names[id]; ok {
			found[id] = name
		}
	}
	return found, nil
}

func (s *stubDirectory) ListActiveIDs(ctx context.Context, companyID string) ([]string, error) {
	s.listActiveCalls++
	return s.activeIDs, nil
}

func claimsContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"company_id": companyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func strPtr(s string) *string {
	return &s
}

func workedRecord(t *testing.T, employeeID, name, date string, regular float64) attendance.Record {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return attendance.Record{
		EmployeeID:   employeeID,
		CompanyID:    "co-1",
		Date:         day,
		RegularHours: decimal.NewFromFloat(regular),
		EmployeeName: strPtr(name),
	}
}

func marchFilter() report.Filter {
	return report.Filter{PeriodStart: "2026-03-01", PeriodEnd: "2026-03-15"}
}

func TestGetSummaryReport_IncludesActiveEmployeesWithoutData(t *testing.T) {
	svc := &ServiceImpl{
		attendanceRepo: &stubAttendanceRepo{records: []attendance.Record{
			workedRecord(t, "emp-1", "Ana Wijaya", "2026-03-02", 8),
		}},
		overrideRepo: &stubOverrideRepo{},
		employeeRepo: &stubDirectory{
			names:     map[string]string{"emp-1": "Ana Wijaya", "emp-2": "Budi Santoso"},
			activeIDs: []string{"emp-1", "emp-2"},
		},
	}

	result, err := svc.GetSummaryReport(claimsContext(t, "co-1"), marchFilter())

	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "emp-1", result.Rows[0].EmployeeID)
	assert.Equal(t, "8.00", result.Rows[0].RegularHours.Effective)
	assert.Equal(t, 1, result.Rows[0].RecordCount)

	// Active employee with no records in the period still gets a row.
	assert.Equal(t, "emp-2", result.Rows[1].EmployeeID)
	assert.Equal(t, "Budi Santoso", result.Rows[1].EmployeeName)
	assert.Equal(t, "0.00", result.Rows[1].RegularHours.Effective)
	assert.Equal(t, 0, result.Rows[1].RecordCount)
	assert.False(t, result.Rows[1].HasPeriodOverride)
}

func TestGetSummaryReport_EmployeeFilterSkipsDirectoryFill(t *testing.T) {
	directory := &stubDirectory{
		names:     map[string]string{"emp-1": "Ana Wijaya", "emp-2": "Budi Santoso"},
		activeIDs: []string{"emp-1", "emp-2"},
	}
	svc := &ServiceImpl{
		attendanceRepo: &stubAttendanceRepo{records: []attendance.Record{
			workedRecord(t, "emp-1", "Ana Wijaya", "2026-03-02", 8),
			workedRecord(t, "emp-2", "Budi Santoso", "2026-03-02", 7),
		}},
		overrideRepo: &stubOverrideRepo{},
		employeeRepo: directory,
	}

	filter := marchFilter()
	filter.EmployeeID = strPtr("emp-1")
	result, err := svc.GetSummaryReport(claimsContext(t, "co-1"), filter)

	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "emp-1", result.Rows[0].EmployeeID)
	assert.Equal(t, 0, directory.listActiveCalls)
}

func TestGetSummaryReport_OverrideOnlyEmployeeGetsNamedRow(t *testing.T) {
	svc := &ServiceImpl{
		attendanceRepo: &stubAttendanceRepo{},
		overrideRepo: &stubOverrideRepo{overrides: []periodoverride.PeriodOverride{{
			EmployeeID:           "emp-2",
			CompanyID:            "co-1",
			OverrideRegularHours: decimalPtr(40),
		}}},
		employeeRepo: &stubDirectory{
			names: map[string]string{"emp-2": "Budi Santoso"},
		},
	}

	result, err := svc.GetSummaryReport(claimsContext(t, "co-1"), marchFilter())

	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Budi Santoso", result.Rows[0].EmployeeName)
	assert.Equal(t, "40.00", result.Rows[0].RegularHours.Effective)
	assert.True(t, result.Rows[0].HasPeriodOverride)
}
