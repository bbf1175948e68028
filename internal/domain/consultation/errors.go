package consultation

import "errors"

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDiagnosisRequired    = errors.New("diagnosis is required")
	ErrNegativeCost         = errors.New("service cost must be non-negative")
)
