package doctor

import "errors"

var (
	ErrDoctorNotFound        = errors.New("doctor profile not found")
	ErrProfileAlreadyExists  = errors.New("account already has a doctor profile")
	ErrSpecializationMissing = errors.New("specialization is required")
)
