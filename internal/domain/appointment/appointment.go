package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status transitions:
//
//	pending → accepted            (admin confirms)
//	pending → refused             (admin denies)
//	pending → reschedule_proposed (admin proposes a new time)
//	reschedule_proposed → accepted (client accepts the new time)
//	reschedule_proposed → refused  (client rejects the new time)
//	accepted → completed           (doctor finalizes a consultation)
//
// completed and refused are terminal. A refused appointment stays dead;
// the client books a new one instead of resurrecting it.
type Status string

const (
	StatusPending            Status = "pending"
	StatusAccepted           Status = "accepted"
	StatusRefused            Status = "refused"
	StatusRescheduleProposed Status = "reschedule_proposed"
	StatusCompleted          Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused, StatusRescheduleProposed, StatusCompleted:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRefused
}

var transitions = map[Status][]Status{
	StatusPending:            {StatusAccepted, StatusRefused, StatusRescheduleProposed},
	StatusAccepted:           {StatusCompleted},
	StatusRescheduleProposed: {StatusAccepted, StatusRefused},
	StatusRefused:            {},
	StatusCompleted:          {},
}

type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PetID    uuid.UUID `gorm:"column:pet_id;type:uuid;not null;index"`
	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index"`
	Status      Status    `gorm:"column:status;type:varchar(30);not null;default:'pending';index"`
	Description string    `gorm:"column:description;type:text"`

	// Version guards every status write; a stale version fails the update
	// instead of silently overwriting a concurrent transition.
	Version int64 `gorm:"column:version;not null;default:1"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Appointment) TableName() string {
	return "clinic.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	for _, s := range transitions[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// transitionTo is the single place Status is assigned after creation.
func (a *Appointment) transitionTo(newStatus Status) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus
	}
	if !a.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}
	a.Status = newStatus
	return nil
}

// Confirm moves a pending appointment to accepted (admin action).
func (a *Appointment) Confirm() error {
	return a.transitionTo(StatusAccepted)
}

// Deny moves a pending appointment to refused (admin action).
func (a *Appointment) Deny() error {
	return a.transitionTo(StatusRefused)
}

// ProposeReschedule moves the appointment to reschedule_proposed and applies
// the new time. Status and time change together or not at all.
func (a *Appointment) ProposeReschedule(newTime time.Time) error {
	if err := a.transitionTo(StatusRescheduleProposed); err != nil {
		return err
	}
	a.ScheduledAt = newTime
	return nil
}

// RespondToReschedule resolves a proposed reschedule: accept keeps the new
// time and confirms, reject closes the appointment as refused.
func (a *Appointment) RespondToReschedule(accept bool) error {
	if accept {
		return a.transitionTo(StatusAccepted)
	}
	return a.transitionTo(StatusRefused)
}

// Complete marks the appointment completed. Only the consultation completion
// flow calls this; a completed appointment always has a consultation.
func (a *Appointment) Complete() error {
	if a.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	return a.transitionTo(StatusCompleted)
}

type CreateAppointmentCommand struct {
	PetID       uuid.UUID
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	Description string
	CreatedBy   uuid.UUID
}

type ListAppointmentsQuery struct {
	PetID    *uuid.UUID
	OwnerID  *uuid.UUID
	DoctorID *uuid.UUID
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

type PagedAppointments struct {
	Appointments []*Appointment
	TotalCount   int64
	Page         int
	PageSize     int
	TotalPages   int
}
