package core

import "errors"

// Common errors.
var (
	ErrMalformedTime  = errors.New("time does not match HH:MM with optional AM/PM")
	ErrHourOutOfRange = errors.New("hour out of range for AM/PM designator")
	ErrNoSelection    = errors.New("no annotated context at location")
)
