package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parsedRow is the trusted form of one CSV row after classification.
// Only rows that classified clean carry parsed values.
type parsedRow struct {
	line       int
	employeeID string
	date       time.Time
	kind       string

	checkIn  *time.Time
	checkOut *time.Time

	regular     *decimal.Decimal
	ot          *decimal.Decimal
	weekendOT   *decimal.Decimal
	statHoliday *decimal.Decimal

	leaveType *string
	remarks   *string
}

// classifyRow validates one CSV row without touching storage. It returns
// the parsed row and an empty message, or a zero row and the rejection
// message. A row is timed (complete punch pair, no explicit hours),
// hours-only (explicit hours, no punches), or invalid.
func classifyRow(line int, row attendance.CSVRow) (parsedRow, string) {
	if validator.IsEmpty(row.EmployeeID) {
		return parsedRow{}, "employee_id is required"
	}

	date, ok := validator.IsValidDate(row.Date)
	if !ok {
		return parsedRow{}, "date must be in YYYY-MM-DD format"
	}

	hasIn := !validator.IsEmpty(row.CheckIn)
	hasOut := !validator.IsEmpty(row.CheckOut)

	hourFields := []struct {
		name  string
		value string
	}{
		{"regular_hours", row.RegularHours},
		{"ot_hours", row.OTHours},
		{"weekend_ot_hours", row.WeekendOTHours},
		{"stat_holiday_hours", row.StatHolidayHours},
	}

	anyHours := false
	parsedHours := make([]*decimal.Decimal, len(hourFields))
	for i, f := range hourFields {
		if validator.IsEmpty(f.value) {
			continue
		}
		anyHours = true
		hours, ok := validator.IsValidHours(f.value)
		if !ok {
			return parsedRow{}, f.name + " must be a non-negative number"
		}
		rounded := hours.Round(2)
		parsedHours[i] = &rounded
	}

	switch {
	case hasIn != hasOut:
		return parsedRow{}, "incomplete time pair: both check_in and check_out are required"
	case hasIn && anyHours:
		return parsedRow{}, "row mixes punch times and explicit hours"
	case !hasIn && !anyHours:
		return parsedRow{}, "row carries neither a punch pair nor explicit hours"
	}

	parsed := parsedRow{
		line:       line,
		employeeID: row.EmployeeID,
		date:       date,
	}
	if !validator.IsEmpty(row.LeaveType) {
		leaveType := row.LeaveType
		parsed.leaveType = &leaveType
	}
	if !validator.IsEmpty(row.Remarks) {
		remarks := row.Remarks
		parsed.remarks = &remarks
	}

	if hasIn {
		inTod, ok := validator.IsValidTimeOfDay(row.CheckIn)
		if !ok {
			return parsedRow{}, "check_in must be in HH:MM:SS format"
		}
		outTod, ok := validator.IsValidTimeOfDay(row.CheckOut)
		if !ok {
			return parsedRow{}, "check_out must be in HH:MM:SS format"
		}

		checkIn := combineDateTime(date, inTod)
		checkOut := combineDateTime(date, outTod)
		if checkOut.Before(checkIn) {
			return parsedRow{}, "check_out must not be before check_in"
		}

		parsed.kind = attendance.RowKindTimed
		parsed.checkIn = &checkIn
		parsed.checkOut = &checkOut
		return parsed, ""
	}

	parsed.kind = attendance.RowKindHoursOnly
	parsed.regular = parsedHours[0]
	parsed.ot = parsedHours[1]
	parsed.weekendOT = parsedHours[2]
	parsed.statHoliday = parsedHours[3]
	return parsed, ""
}

func (s *ServiceImpl) readBatch(csvData io.Reader) ([]attendance.CSVRow, error) {
	var rows []attendance.CSVRow
	if err := gocsv.Unmarshal(csvData, &rows); err != nil {
		return nil, validator.ValidationErrors{{
			Field:   "file",
			Message: fmt.Sprintf("failed to parse CSV: %v", err),
		}}
	}

	if len(rows) == 0 {
		return nil, validator.ValidationErrors{{
			Field:   "file",
			Message: "CSV contains no data rows",
		}}
	}
	if len(rows) > s.importMaxRows {
		return nil, validator.ValidationErrors{{
			Field:   "file",
			Message: fmt.Sprintf("CSV exceeds the %d row limit", s.importMaxRows),
		}}
	}

	return rows, nil
}

// classifyBatch runs classification over a whole batch, marking in-batch
// and stored duplicates. The first occurrence of an employee-date key
// stays importable; later ones are duplicates.
func (s *ServiceImpl) classifyBatch(ctx context.Context, companyID string, rows []attendance.CSVRow) ([]attendance.RowClassification, []parsedRow, error) {
	classifications := make([]attendance.RowClassification, 0, len(rows))
	importable := make([]parsedRow, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		line := i + 2 // data rows start after the header line

		classification := attendance.RowClassification{
			Line:       line,
			EmployeeID: row.EmployeeID,
			Date:       row.Date,
		}

		parsed, message := classifyRow(line, row)
		if message != "" {
			classification.Status = attendance.RowStatusInvalid
			classification.Message = message
			classifications = append(classifications, classification)
			continue
		}
		classification.Kind = parsed.kind

		key := parsed.employeeID + "|" + parsed.date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			classification.Status = attendance.RowStatusDuplicate
			classification.Message = "duplicate of an earlier row in this batch"
			classifications = append(classifications, classification)
			continue
		}
		seen[key] = struct{}{}

		exists, err := s.repo.Exists(ctx, parsed.employeeID, parsed.date, companyID)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			classification.Status = attendance.RowStatusDuplicate
			classification.Message = "a record already exists for this employee and date"
			classifications = append(classifications, classification)
			continue
		}

		classification.Status = attendance.RowStatusImportable
		classifications = append(classifications, classification)
		importable = append(importable, parsed)
	}

	return classifications, importable, nil
}

// PreviewImport implements attendance.Service. It classifies the batch
// without writing anything.
func (s *ServiceImpl) PreviewImport(ctx context.Context, csvData io.Reader) (attendance.PreviewResult, error) {
	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.PreviewResult{}, err
	}

	rows, err := s.readBatch(csvData)
	if err != nil {
		return attendance.PreviewResult{}, err
	}

	classifications, _, err := s.classifyBatch(ctx, companyID, rows)
	if err != nil {
		return attendance.PreviewResult{}, err
	}

	result := attendance.PreviewResult{Rows: classifications}
	for _, c := range classifications {
		switch c.Status {
		case attendance.RowStatusImportable:
			result.ImportableCount++
		case attendance.RowStatusDuplicate:
			result.DuplicateCount++
		default:
			result.InvalidCount++
		}
	}

	return result, nil
}

// ImportCSV implements attendance.Service. Partial success is normal:
// invalid and duplicate rows are reported, never fatal.
func (s *ServiceImpl) ImportCSV(ctx context.Context, csvData io.Reader) (attendance.ImportResult, error) {
	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	rows, err := s.readBatch(csvData)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	classifications, importable, err := s.classifyBatch(ctx, companyID, rows)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	result := attendance.ImportResult{
		BatchID:     uuid.NewString(),
		SkippedRows: []attendance.RowError{},
		Errors:      []attendance.RowError{},
	}
	for _, c := range classifications {
		switch c.Status {
		case attendance.RowStatusDuplicate:
			result.SkippedCount++
			result.SkippedRows = append(result.SkippedRows, attendance.RowError{
				Line:    c.Line,
				Message: c.Message,
			})
		case attendance.RowStatusInvalid:
			result.ErrorCount++
			result.Errors = append(result.Errors, attendance.RowError{
				Line:    c.Line,
				Message: c.Message,
			})
		}
	}

	if len(importable) == 0 {
		return result, nil
	}

	start, end := importable[0].date, importable[0].date
	for _, parsed := range importable[1:] {
		if parsed.date.Before(start) {
			start = parsed.date
		}
		if parsed.date.After(end) {
			end = parsed.date
		}
	}

	holidays, err := s.holidayRepo.InRange(ctx, companyID, start, end)
	if err != nil {
		return attendance.ImportResult{}, err
	}
	rule, err := s.roundingRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	for _, parsed := range importable {
		if err := s.importRow(ctx, companyID, parsed, holidays, rule); err != nil {
			if err == attendance.ErrDuplicateRecord {
				result.SkippedCount++
				result.SkippedRows = append(result.SkippedRows, attendance.RowError{
					Line:    parsed.line,
					Message: "a record already exists for this employee and date",
				})
				continue
			}
			result.ErrorCount++
			result.Errors = append(result.Errors, attendance.RowError{
				Line:    parsed.line,
				Message: err.Error(),
			})
			continue
		}
		result.ImportedCount++
	}

	return result, nil
}

// importRow stores one importable row. Timed rows run through rounding
// and the calculator the same as manual entry; hours-only rows store
// their explicit hours as overrides since no punches back them.
func (s *ServiceImpl) importRow(ctx context.Context, companyID string, parsed parsedRow, holidays map[string]calendar.StatHoliday, rule calendar.RoundingRule) error {
	record := attendance.Record{
		EmployeeID: parsed.employeeID,
		CompanyID:  companyID,
		Date:       parsed.date,
		LeaveType:  parsed.leaveType,
		Remarks:    parsed.remarks,
	}

	date := parsed.date.Format("2006-01-02")
	if holiday, ok := holidays[date]; ok {
		if parsed.leaveType != nil {
			return attendance.ErrConflictingDayContext
		}
		name := holiday.Name
		record.StatHolidayName = &name
	}

	if parsed.kind == attendance.RowKindTimed {
		record.CheckIn = parsed.checkIn
		record.CheckOut = parsed.checkOut
		roundedIn := rule.Apply(*parsed.checkIn)
		roundedOut := rule.Apply(*parsed.checkOut)
		record.RoundedCheckIn = &roundedIn
		record.RoundedCheckOut = &roundedOut

		day := DayContext{Class: record.DayClass()}
		if holiday, ok := holidays[date]; ok {
			entitlement := holiday.EntitlementHours
			day.EntitlementHours = &entitlement
		}

		buckets, err := s.calc.Calculate(record.RoundedCheckIn, record.RoundedCheckOut, day)
		if err != nil {
			return err
		}
		record.RegularHours = buckets.Regular
		record.OTHours = buckets.OT
		record.WeekendOTHours = buckets.WeekendOT
		record.StatHolidayHours = buckets.StatHoliday
	} else {
		// Explicit hours are operator-supplied, not calculated; they
		// live in the override layer so recalculation never erases them.
		record.OverrideRegularHours = parsed.regular
		record.OverrideOTHours = parsed.ot
		record.OverrideWeekendOTHours = parsed.weekendOT
		record.OverrideStatHolidayHours = parsed.statHoliday
		reason := "imported from CSV batch"
		record.HoursEditReason = &reason
	}

	_, err := s.repo.Create(ctx, record)
	return err
}
