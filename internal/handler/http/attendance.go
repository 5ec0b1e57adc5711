package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateOverrides(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	RecalculateOne(w http.ResponseWriter, r *http.Request)
	PreviewImport(w http.ResponseWriter, r *http.Request)
	ImportCSV(w http.ResponseWriter, r *http.Request)
	DeleteByDateRange(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{
		PeriodStart: r.URL.Query().Get("pay_period_start"),
		PeriodEnd:   r.URL.Query().Get("pay_period_end"),
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements AttendanceHandler.
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// UpdateOverrides implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateOverrides(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateOverridesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateOverrides(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overrides updated", result)
}

// Recalculate implements AttendanceHandler.
func (h *attendanceHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Recalculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recalculation complete", result)
}

// RecalculateOne implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecalculateOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.RecalculateOne(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record recalculated", result)
}

// csvUpload pulls the uploaded CSV out of a multipart form (max 10MB).
func csvUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return nil, false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, false
	}

	return file, true
}

// PreviewImport implements AttendanceHandler.
func (h *attendanceHandlerImpl) PreviewImport(w http.ResponseWriter, r *http.Request) {
	file, ok := csvUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.attendanceService.PreviewImport(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportCSV implements AttendanceHandler.
func (h *attendanceHandlerImpl) ImportCSV(w http.ResponseWriter, r *http.Request) {
	file, ok := csvUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.attendanceService.ImportCSV(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import complete", result)
}

// DeleteByDateRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteByDateRange(w http.ResponseWriter, r *http.Request) {
	var req attendance.DeleteRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.DeleteByDateRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance records deleted", result)
}
