package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type ServiceImpl struct {
	db            *database.DB
	repo          attendance.Repository
	employeeRepo  employee.Repository
	periodRepo    calendar.PayPeriodRepository
	holidayRepo   calendar.HolidayRepository
	roundingRepo  calendar.RoundingRuleRepository
	calc          *Calculator
	importMaxRows int
}

func NewService(
	db *database.DB,
	repo attendance.Repository,
	employeeRepo employee.Repository,
	periodRepo calendar.PayPeriodRepository,
	holidayRepo calendar.HolidayRepository,
	roundingRepo calendar.RoundingRuleRepository,
	calc *Calculator,
	importMaxRows int,
) attendance.Service {
	return &ServiceImpl{
		db:            db,
		repo:          repo,
		employeeRepo:  employeeRepo,
		periodRepo:    periodRepo,
		holidayRepo:   holidayRepo,
		roundingRepo:  roundingRepo,
		calc:          calc,
		importMaxRows: importMaxRows,
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

// List implements attendance.Service.
func (s *ServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", filter.PeriodStart)
	end, _ := time.Parse("2006-01-02", filter.PeriodEnd)

	records, err := s.repo.ListRange(ctx, companyID, filter.EmployeeID, start, end)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, MapRecordResponse(records[i]))
	}

	// A single-employee view renders as a full calendar: period days
	// without a stored record get virtual zero-hour placeholders.
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		holidays, err := s.holidayRepo.InRange(ctx, companyID, start, end)
		if err != nil {
			return attendance.ListResponse{}, err
		}
		responses = fillVirtualDays(responses, *filter.EmployeeID, start, end, holidays)
	}

	return attendance.ListResponse{
		PeriodStart: filter.PeriodStart,
		PeriodEnd:   filter.PeriodEnd,
		Records:     responses,
	}, nil
}

// fillVirtualDays merges placeholder rows for every date in [start, end]
// that has no stored record. Placeholders carry no ID and are never
// persisted; editing one requires creating a real record first.
func fillVirtualDays(stored []attendance.RecordResponse, employeeID string, start, end time.Time, holidays map[string]calendar.StatHoliday) []attendance.RecordResponse {
	byDate := make(map[string]struct{}, len(stored))
	for i := range stored {
		byDate[stored[i].Date] = struct{}{}
	}

	merged := make([]attendance.RecordResponse, 0, len(stored))
	idx := 0
	zero := attendance.BucketResponse{Effective: "0.00", Calculated: "0.00"}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if _, ok := byDate[date]; ok {
			for idx < len(stored) && stored[idx].Date == date {
				merged = append(merged, stored[idx])
				idx++
			}
			continue
		}

		class := attendance.DayClassWeekday
		var holidayName *string
		if h, ok := holidays[date]; ok {
			class = attendance.DayClassStatHoliday
			name := h.Name
			holidayName = &name
		} else if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			class = attendance.DayClassWeekend
		}

		merged = append(merged, attendance.RecordResponse{
			EmployeeID:       employeeID,
			Date:             date,
			DayClass:         string(class),
			StatHolidayName:  holidayName,
			RegularHours:     zero,
			OTHours:          zero,
			WeekendOTHours:   zero,
			StatHolidayHours: zero,
			IsVirtual:        true,
		})
	}

	for ; idx < len(stored); idx++ {
		merged = append(merged, stored[idx])
	}

	return merged
}

// Get implements attendance.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordResponse(record), nil
}

// Create implements attendance.Service.
func (s *ServiceImpl) Create(ctx context.Context, req attendance.CreateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	// Manually entered records must land inside a known pay period
	if _, err := s.periodRepo.FindByDate(ctx, companyID, date); err != nil {
		return attendance.RecordResponse{}, err
	}

	holidays, err := s.holidayRepo.InRange(ctx, companyID, date, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record := attendance.Record{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		LeaveType:  req.LeaveType,
		Remarks:    req.Remarks,
	}

	// Holiday context comes from the calendar, not the caller; the
	// caller's name must agree with it when supplied.
	if holiday, ok := holidays[req.Date]; ok {
		if req.LeaveType != nil {
			return attendance.RecordResponse{}, attendance.ErrConflictingDayContext
		}
		name := holiday.Name
		record.StatHolidayName = &name
	} else if req.StatHolidayName != nil {
		record.StatHolidayName = req.StatHolidayName
	}

	if req.CheckIn != nil && req.CheckOut != nil {
		inTod, _ := validator.IsValidTimeOfDay(*req.CheckIn)
		outTod, _ := validator.IsValidTimeOfDay(*req.CheckOut)
		checkIn := combineDateTime(date, inTod)
		checkOut := combineDateTime(date, outTod)
		record.CheckIn = &checkIn
		record.CheckOut = &checkOut

		rule, err := s.roundingRepo.GetByCompany(ctx, companyID)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		roundedIn := rule.Apply(checkIn)
		roundedOut := rule.Apply(checkOut)
		record.RoundedCheckIn = &roundedIn
		record.RoundedCheckOut = &roundedOut
	}

	day := DayContext{Class: record.DayClass()}
	if holiday, ok := holidays[req.Date]; ok {
		entitlement := holiday.EntitlementHours
		day.EntitlementHours = &entitlement
	}

	buckets, err := s.calc.Calculate(record.RoundedCheckIn, record.RoundedCheckOut, day)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	record.RegularHours = buckets.Regular
	record.OTHours = buckets.OT
	record.WeekendOTHours = buckets.WeekendOT
	record.StatHolidayHours = buckets.StatHoliday

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordResponse(created), nil
}

// UpdateOverrides implements attendance.Service. Base buckets are never
// touched here; only the override layer changes.
func (s *ServiceImpl) UpdateOverrides(ctx context.Context, req attendance.UpdateOverridesRequest) (attendance.RecordResponse, error) {
	// Virtual placeholder rows carry no ID
	if req.ID == "" {
		return attendance.RecordResponse{}, attendance.ErrVirtualRecordImmutable
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// The read-modify-write on the override columns runs in one
	// transaction so two operators editing the same record cannot
	// interleave.
	var updated attendance.Record
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		record, err := s.repo.GetByID(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}

		applyOverrideRequest(&record, req)

		if err := s.repo.UpdateOverrides(txCtx, record); err != nil {
			return err
		}

		updated, err = s.repo.GetByID(txCtx, req.ID, companyID)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordResponse(updated), nil
}

func applyOverrideRequest(record *attendance.Record, req attendance.UpdateOverridesRequest) {
	if req.ClearTimeOverride {
		record.OverrideCheckIn = nil
		record.OverrideCheckOut = nil
		record.TimeEditReason = nil
	}
	if req.ClearHoursOverride {
		record.OverrideRegularHours = nil
		record.OverrideOTHours = nil
		record.OverrideWeekendOTHours = nil
		record.OverrideStatHolidayHours = nil
		record.HoursEditReason = nil
	}

	if req.OverrideCheckIn != nil {
		tod, _ := validator.IsValidTimeOfDay(*req.OverrideCheckIn)
		checkIn := combineDateTime(record.Date, tod)
		record.OverrideCheckIn = &checkIn
	}
	if req.OverrideCheckOut != nil {
		tod, _ := validator.IsValidTimeOfDay(*req.OverrideCheckOut)
		checkOut := combineDateTime(record.Date, tod)
		record.OverrideCheckOut = &checkOut
	}
	if req.TimeEditReason != nil {
		record.TimeEditReason = req.TimeEditReason
	}

	if req.OverrideRegularHours != nil {
		record.OverrideRegularHours = req.OverrideRegularHours
	}
	if req.OverrideOTHours != nil {
		record.OverrideOTHours = req.OverrideOTHours
	}
	if req.OverrideWeekendOTHours != nil {
		record.OverrideWeekendOTHours = req.OverrideWeekendOTHours
	}
	if req.OverrideStatHolidayHours != nil {
		record.OverrideStatHolidayHours = req.OverrideStatHolidayHours
	}
	if req.HoursEditReason != nil {
		record.HoursEditReason = req.HoursEditReason
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}
}

// Recalculate implements attendance.Service.
func (s *ServiceImpl) Recalculate(ctx context.Context, req attendance.RecalculateRequest) (attendance.RecalcResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecalcResult{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.RecalcResult{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	return s.recalculateRange(ctx, companyID, req.EmployeeID, start, end)
}

// RecalculateOne implements attendance.Service.
func (s *ServiceImpl) RecalculateOne(ctx context.Context, id string) (attendance.RecordResponse, error) {
	if id == "" {
		return attendance.RecordResponse{}, attendance.ErrVirtualRecordImmutable
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	holidays, err := s.holidayRepo.InRange(ctx, companyID, record.Date, record.Date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	rule, err := s.roundingRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, _, err := s.recalculateRecord(ctx, record, holidays, rule)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordResponse(updated), nil
}

// RecalculateForCompany implements attendance.Service. It is the entry
// point used by the nightly sweep and carries no claims requirement.
func (s *ServiceImpl) RecalculateForCompany(ctx context.Context, companyID string, start, end time.Time) (attendance.RecalcResult, error) {
	return s.recalculateRange(ctx, companyID, nil, start, end)
}

func (s *ServiceImpl) recalculateRange(ctx context.Context, companyID string, employeeID *string, start, end time.Time) (attendance.RecalcResult, error) {
	records, err := s.repo.ListRange(ctx, companyID, employeeID, start, end)
	if err != nil {
		return attendance.RecalcResult{}, err
	}

	holidays, err := s.holidayRepo.InRange(ctx, companyID, start, end)
	if err != nil {
		return attendance.RecalcResult{}, err
	}
	rule, err := s.roundingRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return attendance.RecalcResult{}, err
	}

	result := attendance.RecalcResult{Errors: []attendance.RecordError{}}
	for i := range records {
		_, recalculated, err := s.recalculateRecord(ctx, records[i], holidays, rule)
		switch {
		case err != nil:
			result.ErrorCount++
			result.Errors = append(result.Errors, attendance.RecordError{
				EmployeeID: records[i].EmployeeID,
				Date:       records[i].Date.Format("2006-01-02"),
				Message:    err.Error(),
			})
		case recalculated:
			result.RecalculatedCount++
		default:
			result.SkippedCount++
		}
	}

	return result, nil
}

// recalculateRecord re-derives one record's base buckets from its raw
// punches and day classification. The override layer is never touched.
// Records with no punches on a plain weekday or weekend carry nothing to
// re-derive and are skipped; holiday and leave days re-derive from
// entitlement.
func (s *ServiceImpl) recalculateRecord(ctx context.Context, record attendance.Record, holidays map[string]calendar.StatHoliday, rule calendar.RoundingRule) (attendance.Record, bool, error) {
	date := record.Date.Format("2006-01-02")

	day := DayContext{Class: record.DayClass()}
	if holiday, ok := holidays[date]; ok {
		day.Class = attendance.DayClassStatHoliday
		entitlement := holiday.EntitlementHours
		day.EntitlementHours = &entitlement
	}

	if record.CheckIn == nil && record.CheckOut == nil &&
		(day.Class == attendance.DayClassWeekday || day.Class == attendance.DayClassWeekend) {
		return record, false, nil
	}

	if record.HasPunchPair() {
		roundedIn := rule.Apply(*record.CheckIn)
		roundedOut := rule.Apply(*record.CheckOut)
		record.RoundedCheckIn = &roundedIn
		record.RoundedCheckOut = &roundedOut
	}

	buckets, err := s.calc.Calculate(record.RoundedCheckIn, record.RoundedCheckOut, day)
	if err != nil {
		return record, false, err
	}

	record.RegularHours = buckets.Regular
	record.OTHours = buckets.OT
	record.WeekendOTHours = buckets.WeekendOT
	record.StatHolidayHours = buckets.StatHoliday

	if err := s.repo.UpdateCalculated(ctx, record); err != nil {
		return record, false, err
	}

	return record, true, nil
}

// DeleteByDateRange implements attendance.Service.
func (s *ServiceImpl) DeleteByDateRange(ctx context.Context, req attendance.DeleteRangeRequest) (attendance.DeleteRangeResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.DeleteRangeResult{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.DeleteRangeResult{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	deleted, err := s.repo.DeleteRange(ctx, companyID, req.EmployeeID, start, end)
	if err != nil {
		return attendance.DeleteRangeResult{}, err
	}

	return attendance.DeleteRangeResult{DeletedCount: deleted}, nil
}

func combineDateTime(date, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func mapBucket(v attendance.Resolved) attendance.BucketResponse {
	resp := attendance.BucketResponse{
		Effective:  v.Effective().StringFixed(2),
		Calculated: v.Calculated.StringFixed(2),
	}
	if v.Override != nil {
		override := v.Override.StringFixed(2)
		resp.Override = &override
	}
	return resp
}

// MapRecordResponse resolves a record through its override layer and
// formats it for display. The report service reuses it for day rows.
func MapRecordResponse(record attendance.Record) attendance.RecordResponse {
	effective := record.Resolve()

	return attendance.RecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		EmployeeName:      record.EmployeeName,
		Date:              record.Date.Format("2006-01-02"),
		DayClass:          string(record.DayClass()),
		CheckIn:           formatTimePtr(record.CheckIn),
		CheckOut:          formatTimePtr(record.CheckOut),
		RoundedCheckIn:    formatTimePtr(record.RoundedCheckIn),
		RoundedCheckOut:   formatTimePtr(record.RoundedCheckOut),
		EffectiveCheckIn:  formatTimePtr(effective.EffectiveCheckIn()),
		EffectiveCheckOut: formatTimePtr(effective.EffectiveCheckOut()),
		RegularHours:      mapBucket(effective.Regular),
		OTHours:           mapBucket(effective.OT),
		WeekendOTHours:    mapBucket(effective.WeekendOT),
		StatHolidayHours:  mapBucket(effective.StatHoliday),
		IsManualOverride:  record.IsManualOverride(),
		TimeEditReason:    record.TimeEditReason,
		HoursEditReason:   record.HoursEditReason,
		Remarks:           record.Remarks,
		LeaveType:         record.LeaveType,
		StatHolidayName:   record.StatHolidayName,
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         record.UpdatedAt.Format(time.RFC3339),
	}
}
