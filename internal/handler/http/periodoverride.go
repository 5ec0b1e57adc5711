package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PeriodOverrideHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type periodOverrideHandlerImpl struct {
	overrideService periodoverride.Service
}

func NewPeriodOverrideHandler(overrideService periodoverride.Service) PeriodOverrideHandler {
	return &periodOverrideHandlerImpl{
		overrideService: overrideService,
	}
}

// Get implements PeriodOverrideHandler.
func (h *periodOverrideHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req := periodoverride.GetRequest{
		EmployeeID:  r.URL.Query().Get("employee_id"),
		PeriodStart: r.URL.Query().Get("pay_period_start"),
		PeriodEnd:   r.URL.Query().Get("pay_period_end"),
	}

	result, err := h.overrideService.Get(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Save implements PeriodOverrideHandler.
func (h *periodOverrideHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req periodoverride.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overrideService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period override saved", result)
}

// Delete implements PeriodOverrideHandler.
func (h *periodOverrideHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.overrideService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period override removed", nil)
}
