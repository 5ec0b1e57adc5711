package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "A record already exists for this employee and date")
	case errors.Is(err, attendance.ErrIncompletePunchPair):
		BadRequest(w, "Both check-in and check-out are required", nil)
	case errors.Is(err, attendance.ErrNegativeWorkedTime):
		BadRequest(w, "Check-out must not be before check-in", nil)
	case errors.Is(err, attendance.ErrConflictingDayContext):
		BadRequest(w, "A day cannot be both a leave day and a stat holiday", nil)
	case errors.Is(err, attendance.ErrVirtualRecordImmutable):
		BadRequest(w, "Placeholder days cannot be edited; create a record first", nil)

	// Period override domain errors
	case errors.Is(err, periodoverride.ErrPeriodOverrideNotFound):
		NotFound(w, "Period override not found")
	case errors.Is(err, periodoverride.ErrPeriodOverrideConflict):
		Conflict(w, "Period override was modified by another operator")

	// Calendar / directory errors
	case errors.Is(err, calendar.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
