package attendance

import "errors"

// Attendance domain errors
var (
	// Record errors
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")

	// Computation errors, collected per record during import and recalculation
	ErrIncompletePunchPair = errors.New("incomplete time pair: both check-in and check-out are required")
	ErrNegativeWorkedTime  = errors.New("check-out is before check-in")

	// Request errors
	ErrConflictingDayContext  = errors.New("leave type and stat holiday name cannot both be set")
	ErrVirtualRecordImmutable = errors.New("virtual placeholder records cannot be updated")
)
