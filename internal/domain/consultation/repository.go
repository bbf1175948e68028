package consultation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new consultation. The unique index on appointment_id
	// rejects a second consultation for the same appointment.
	Create(ctx context.Context, c *Consultation) error

	// GetByID returns ErrConsultationNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)

	// GetByAppointmentID returns ErrConsultationNotFound when the appointment
	// has no consultation yet.
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*Consultation, error)

	// DeleteByAppointmentID removes the consultation linked to an appointment.
	// Used only by the appointment-delete cascade.
	DeleteByAppointmentID(ctx context.Context, appointmentID uuid.UUID) error
}
