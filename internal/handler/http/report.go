package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetSummaryReport(w http.ResponseWriter, r *http.Request)
	GetDetailedReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportFilter(r *http.Request) report.Filter {
	filter := report.Filter{
		PeriodStart: r.URL.Query().Get("pay_period_start"),
		PeriodEnd:   r.URL.Query().Get("pay_period_end"),
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	return filter
}

// GetSummaryReport implements ReportHandler.
func (h *reportHandlerImpl) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetSummaryReport(r.Context(), reportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDetailedReport implements ReportHandler.
func (h *reportHandlerImpl) GetDetailedReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetDetailedReport(r.Context(), reportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
