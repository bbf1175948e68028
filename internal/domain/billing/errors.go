package billing

import "errors"

var (
	ErrBillNotFound = errors.New("bill not found")
	ErrAlreadyPaid  = errors.New("bill is already paid")
	// ErrVersionConflict signals a lost optimistic-lock race on a bill write.
	ErrVersionConflict = errors.New("bill was modified concurrently")
)
