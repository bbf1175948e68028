package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	List(ctx context.Context, q *ListAppointmentsQuery) (*PagedAppointments, error)

	// UpdateStatus writes status and scheduled time conditioned on the version
	// the appointment was loaded with. Returns ErrVersionConflict when the row
	// changed underneath, and bumps a.Version on success.
	UpdateStatus(ctx context.Context, a *Appointment) error

	// Delete removes the appointment row. Consultation and bill cleanup is the
	// caller's responsibility inside the same atomic unit.
	Delete(ctx context.Context, id uuid.UUID) error
}
