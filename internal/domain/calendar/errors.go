package calendar

import "errors"

// Calendar domain errors
var (
	ErrPayPeriodNotFound = errors.New("no pay period covers the requested date")
)
