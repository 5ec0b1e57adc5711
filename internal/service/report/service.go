package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	attendancesvc "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	"github.com/go-chi/jwtauth/v5"
)

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	overrideRepo   periodoverride.Repository
	employeeRepo   employee.Repository
}

func NewService(
	attendanceRepo attendance.Repository,
	overrideRepo periodoverride.Repository,
	employeeRepo employee.Repository,
) report.Service {
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		overrideRepo:   overrideRepo,
		employeeRepo:   employeeRepo,
	}
}

func companyFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// periodData is everything one report needs, loaded once per request.
type periodData struct {
	start, end  time.Time
	employeeIDs []string
	records     map[string][]attendance.Record
	overrides   map[string]periodoverride.PeriodOverride
	names       map[string]string
}

func (s *ServiceImpl) loadPeriod(ctx context.Context, companyID string, filter report.Filter) (periodData, error) {
	start, _ := time.Parse("2006-01-02", filter.PeriodStart)
	end, _ := time.Parse("2006-01-02", filter.PeriodEnd)

	records, err := s.attendanceRepo.ListRange(ctx, companyID, filter.EmployeeID, start, end)
	if err != nil {
		return periodData{}, err
	}

	allOverrides, err := s.overrideRepo.GetForPeriod(ctx, companyID, start, end)
	if err != nil {
		return periodData{}, err
	}

	data := periodData{
		start:     start,
		end:       end,
		records:   make(map[string][]attendance.Record),
		overrides: make(map[string]periodoverride.PeriodOverride, len(allOverrides)),
		names:     make(map[string]string),
	}

	for _, record := range records {
		data.records[record.EmployeeID] = append(data.records[record.EmployeeID], record)
		if record.EmployeeName != nil {
			data.names[record.EmployeeID] = *record.EmployeeName
		}
	}
	for _, override := range allOverrides {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && override.EmployeeID != *filter.EmployeeID {
			continue
		}
		data.overrides[override.EmployeeID] = override
	}

	// An employee appears when they have records, a period override, or
	// both. A company-wide report additionally lists every active
	// employee, so someone with no data in the period still shows a
	// zero row. Employees beyond the record join need display names.
	seen := make(map[string]struct{})
	var missing []string
	for id := range data.records {
		seen[id] = struct{}{}
		data.employeeIDs = append(data.employeeIDs, id)
	}
	for id := range data.overrides {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		data.employeeIDs = append(data.employeeIDs, id)
		missing = append(missing, id)
	}
	if filter.EmployeeID == nil || *filter.EmployeeID == "" {
		activeIDs, err := s.employeeRepo.ListActiveIDs(ctx, companyID)
		if err != nil {
			return periodData{}, err
		}
		for _, id := range activeIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			data.employeeIDs = append(data.employeeIDs, id)
			missing = append(missing, id)
		}
	}
	sort.Strings(data.employeeIDs)

	if len(missing) > 0 {
		names, err := s.employeeRepo.NamesByIDs(ctx, companyID, missing)
		if err != nil {
			return periodData{}, err
		}
		for id, name := range names {
			data.names[id] = name
		}
	}

	return data, nil
}

// GetSummaryReport implements report.Service.
func (s *ServiceImpl) GetSummaryReport(ctx context.Context, filter report.Filter) (report.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.SummaryResponse{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return report.SummaryResponse{}, err
	}

	data, err := s.loadPeriod(ctx, companyID, filter)
	if err != nil {
		return report.SummaryResponse{}, err
	}

	rows := make([]report.PeriodTotals, 0, len(data.employeeIDs))
	for _, employeeID := range data.employeeIDs {
		rows = append(rows, s.totalsFor(employeeID, filter, data))
	}

	return report.SummaryResponse{
		PeriodStart: filter.PeriodStart,
		PeriodEnd:   filter.PeriodEnd,
		Rows:        rows,
	}, nil
}

// GetDetailedReport implements report.Service. Day rows carry the full
// resolved record; each employee's section closes with a subtotal row.
func (s *ServiceImpl) GetDetailedReport(ctx context.Context, filter report.Filter) (report.DetailedResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.DetailedResponse{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return report.DetailedResponse{}, err
	}

	data, err := s.loadPeriod(ctx, companyID, filter)
	if err != nil {
		return report.DetailedResponse{}, err
	}

	var rows []report.DetailRow
	for _, employeeID := range data.employeeIDs {
		for _, record := range data.records[employeeID] {
			day := attendancesvc.MapRecordResponse(record)
			rows = append(rows, report.DetailRow{RowType: "day", Day: &day})
		}

		subtotal := s.totalsFor(employeeID, filter, data)
		rows = append(rows, report.DetailRow{RowType: "subtotal", Subtotal: &subtotal})
	}

	return report.DetailedResponse{
		PeriodStart: filter.PeriodStart,
		PeriodEnd:   filter.PeriodEnd,
		Rows:        rows,
	}, nil
}

func (s *ServiceImpl) totalsFor(employeeID string, filter report.Filter, data periodData) report.PeriodTotals {
	var override *periodoverride.PeriodOverride
	if o, ok := data.overrides[employeeID]; ok {
		override = &o
	}

	totals := aggregatePeriod(employeeID, data.records[employeeID], override)
	totals.EmployeeName = data.names[employeeID]
	totals.PeriodStart = filter.PeriodStart
	totals.PeriodEnd = filter.PeriodEnd
	return totals
}
