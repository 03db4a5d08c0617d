package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicatePending is returned by stores that refuse a second PENDING
	// application for the same job seeker and job.
	ErrDuplicatePending = errors.New("pending application already exists")

	// ErrStatusChanged is returned when a conditional status update lost a race.
	ErrStatusChanged = errors.New("application status changed concurrently")
)
