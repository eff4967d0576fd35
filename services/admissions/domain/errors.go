package domain

import "errors"

// Sentinel errors for the admissions domain. Use errors.Is() to check these.
var (
	// ErrMissingFields indicates one or more required application fields are empty.
	ErrMissingFields = errors.New("all fields are required")
)
