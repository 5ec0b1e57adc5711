package periodoverride

import "errors"

// Period override domain errors
var (
	// Expected during aggregation; callers resolve it as "no override"
	ErrPeriodOverrideNotFound = errors.New("period override not found")

	// Upsert race between two operators editing the same period
	ErrPeriodOverrideConflict = errors.New("period override was modified concurrently")
)
