package report

import "context"

// Service produces payroll-facing views of reconciled periods.
type Service interface {
	// GetSummaryReport returns one PeriodTotals row per employee
	GetSummaryReport(ctx context.Context, filter Filter) (SummaryResponse, error)

	// GetDetailedReport returns one row per employee-day with a
	// subtotal row closing each employee's section
	GetDetailedReport(ctx context.Context, filter Filter) (DetailedResponse, error)
}
