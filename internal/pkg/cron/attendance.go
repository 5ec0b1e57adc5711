package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
)

// AttendanceJobs holds the nightly maintenance work over attendance
// data: re-deriving calculated buckets for every open pay period so
// late holiday-calendar or rounding-rule changes flow into stored rows.
type AttendanceJobs struct {
	attendanceService attendance.Service
	periodRepo        calendar.PayPeriodRepository
}

func NewAttendanceJobs(
	attendanceService attendance.Service,
	periodRepo calendar.PayPeriodRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		periodRepo:        periodRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recalculate_open_periods", 1*time.Hour, j.RecalculateOpenPeriods)
}

// RecalculateOpenPeriods re-runs the calculator over every company's
// currently open pay period. Override fields never change here;
// per-record failures are logged and never abort the sweep.
func (j *AttendanceJobs) RecalculateOpenPeriods(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting open-period recalculation sweep")

	periods, err := j.periodRepo.ListOpenPeriods(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to list open pay periods: %w", err)
	}

	if len(periods) == 0 {
		slog.Info("Cron: No open pay periods found")
		return nil
	}

	for _, period := range periods {
		result, err := j.attendanceService.RecalculateForCompany(ctx, period.CompanyID, period.StartDate, period.EndDate)
		if err != nil {
			slog.Error("Cron: Recalculation sweep failed for company",
				"company_id", period.CompanyID,
				"period_start", period.StartDate.Format("2006-01-02"),
				"error", err)
			continue
		}

		slog.Info("Cron: Recalculated open period",
			"company_id", period.CompanyID,
			"period_start", period.StartDate.Format("2006-01-02"),
			"period_end", period.EndDate.Format("2006-01-02"),
			"recalculated", result.RecalculatedCount,
			"skipped", result.SkippedCount,
			"errors", result.ErrorCount)
	}

	return nil
}
