package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid appointment status transition")
	ErrInvalidStatus       = errors.New("unknown appointment status value")
	ErrAlreadyCompleted    = errors.New("appointment is already completed")
	ErrScheduledInPast     = errors.New("cannot schedule appointment in the past")
	// ErrVersionConflict signals a lost optimistic-lock race: the appointment
	// changed between read and write. Callers surface this for retry.
	ErrVersionConflict = errors.New("appointment was modified concurrently")
)
