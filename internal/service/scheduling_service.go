package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/authz"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SchedulingService is the workflow façade for the appointment lifecycle.
// Every call takes the resolved actor explicitly; authorization happens before
// any mutation is attempted.
type SchedulingService struct {
	appts    appointment.Repository
	pets     pet.Repository
	doctors  doctor.Repository
	consults consultation.Repository
	bills    billing.Repository
	tx       domain.TxRunner
	auditSvc *AuditService
	log      *zap.Logger
	now      func() time.Time
}

func NewSchedulingService(
	appts appointment.Repository,
	pets pet.Repository,
	doctors doctor.Repository,
	consults consultation.Repository,
	bills billing.Repository,
	tx domain.TxRunner,
	auditSvc *AuditService,
	log *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		appts:    appts,
		pets:     pets,
		doctors:  doctors,
		consults: consults,
		bills:    bills,
		tx:       tx,
		auditSvc: auditSvc,
		log:      log,
		now:      time.Now,
	}
}

// resolvePet follows the appointment's pet link defensively. A missing pet
// yields nil (the guard then denies); anything else is an infrastructure error.
func (s *SchedulingService) resolvePet(ctx context.Context, a *appointment.Appointment) (*pet.Pet, error) {
	p, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		if errors.Is(err, pet.ErrPetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving pet: %w", err)
	}
	return p, nil
}

func (s *SchedulingService) CreateAppointment(ctx context.Context, actor authz.Actor, cmd *appointment.CreateAppointmentCommand, ip string) (*appointment.Appointment, error) {
	p, err := s.pets.GetByID(ctx, cmd.PetID)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(actor, authz.OpAppointmentCreate, authz.Target{Pet: p}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	if !cmd.ScheduledAt.After(s.now()) {
		return nil, appointment.ErrScheduledInPast
	}
	if _, err := s.doctors.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}

	a := &appointment.Appointment{
		PetID:       cmd.PetID,
		DoctorID:    cmd.DoctorID,
		ScheduledAt: cmd.ScheduledAt,
		Status:      appointment.StatusPending,
		Description: cmd.Description,
		Version:     1,
		CreatedBy:   actor.AccountID,
	}

	if err := s.appts.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	return a, nil
}

func (s *SchedulingService) GetAppointment(ctx context.Context, actor authz.Actor, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.resolvePet(ctx, a)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpAppointmentRead, authz.Target{Appointment: a, Pet: p}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	return a, nil
}

// ListAppointments scopes the query to what the actor may see: clients their
// own pets' appointments, doctors their own docket, admins everything.
func (s *SchedulingService) ListAppointments(ctx context.Context, actor authz.Actor, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	switch actor.Role {
	case domain.RoleClient:
		q.OwnerID = &actor.AccountID
	case domain.RoleDoctor:
		if actor.DoctorProfileID == nil {
			return nil, forbidden("account has no doctor profile")
		}
		q.DoctorID = actor.DoctorProfileID
	case domain.RoleAdmin:
		// unrestricted
	default:
		return nil, forbidden("unknown role")
	}

	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.appts.List(ctx, q)
}

// AdminSetStatus is the admin triage entry point: confirm or deny a booking.
// Completion is reserved for the consultation flow and rescheduling for
// ProposeReschedule, both rejected here.
func (s *SchedulingService) AdminSetStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, newStatus appointment.Status, ip string) (*appointment.Appointment, error) {
	if !newStatus.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}

	if d := authz.Authorize(actor, authz.OpAppointmentStatus, authz.Target{}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch newStatus {
	case appointment.StatusAccepted:
		err = a.Confirm()
	case appointment.StatusRefused:
		err = a.Deny()
	case appointment.StatusRescheduleProposed:
		return nil, &ValidationError{Fields: []string{"reschedule_proposed requires a new time; use the reschedule endpoint"}}
	default:
		err = appointment.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	if err := s.appts.UpdateStatus(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"status":%q}`, newStatus),
	})

	return a, nil
}

// ProposeReschedule moves the appointment to reschedule_proposed and applies
// the new time in one write.
func (s *SchedulingService) ProposeReschedule(ctx context.Context, actor authz.Actor, id uuid.UUID, newTime time.Time, ip string) (*appointment.Appointment, error) {
	if d := authz.Authorize(actor, authz.OpAppointmentPropose, authz.Target{}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}
	if !newTime.After(s.now()) {
		return nil, appointment.ErrScheduledInPast
	}

	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.ProposeReschedule(newTime); err != nil {
		return nil, err
	}

	if err := s.appts.UpdateStatus(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"status":"reschedule_proposed","scheduled_at":%q}`, newTime.Format(time.RFC3339)),
	})

	return a, nil
}

// RespondToReschedule lets the pet's owner accept the proposed time (accepted)
// or reject it, which closes the appointment as refused.
func (s *SchedulingService) RespondToReschedule(ctx context.Context, actor authz.Actor, id uuid.UUID, accept bool, ip string) (*appointment.Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.resolvePet(ctx, a)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpAppointmentRespond, authz.Target{Appointment: a, Pet: p}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	if err := a.RespondToReschedule(accept); err != nil {
		return nil, err
	}
	if err := s.appts.UpdateStatus(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"status":%q,"reschedule_accepted":%t}`, a.Status, accept),
	})

	return a, nil
}

// CompletionResult is everything the completion transaction produced.
type CompletionResult struct {
	Appointment  *appointment.Appointment   `json:"appointment"`
	Consultation *consultation.Consultation `json:"consultation"`
	Bill         *billing.Bill              `json:"bill"`
}

// CompleteConsultation finalizes an accepted appointment: it records the
// consultation, derives the bill from the service cost, and marks the
// appointment completed — all inside one transaction. No partial outcome is
// ever visible; a concurrent completion loses on the version check and rolls
// back its consultation and bill.
func (s *SchedulingService) CompleteConsultation(ctx context.Context, actor authz.Actor, cmd *consultation.CompleteConsultationCommand, ip string) (*CompletionResult, error) {
	if cmd.Diagnosis == "" {
		return nil, consultation.ErrDiagnosisRequired
	}
	if cmd.ServiceCost < 0 {
		return nil, consultation.ErrNegativeCost
	}

	a, err := s.appts.GetByID(ctx, cmd.AppointmentID)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(actor, authz.OpAppointmentComplete, authz.Target{Appointment: a}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}
	if a.Status == appointment.StatusCompleted {
		return nil, appointment.ErrAlreadyCompleted
	}

	var result *CompletionResult
	err = s.tx.RunAtomic(ctx, func(txCtx context.Context) error {
		// Re-read inside the transaction; the precheck above raced anything
		// committed since.
		fresh, err := s.appts.GetByID(txCtx, cmd.AppointmentID)
		if err != nil {
			return err
		}
		if fresh.Status == appointment.StatusCompleted {
			return appointment.ErrAlreadyCompleted
		}

		c := &consultation.Consultation{
			AppointmentID: fresh.ID,
			Diagnosis:     cmd.Diagnosis,
			Treatment:     cmd.Treatment,
			Notes:         cmd.Notes,
			ServiceCost:   cmd.ServiceCost,
			CreatedBy:     actor.AccountID,
		}
		if err := s.consults.Create(txCtx, c); err != nil {
			return fmt.Errorf("creating consultation: %w", err)
		}

		b := &billing.Bill{
			ConsultationID: c.ID,
			TotalAmount:    cmd.ServiceCost,
			IsPaid:         false,
			Version:        1,
		}
		if err := s.bills.Create(txCtx, b); err != nil {
			return fmt.Errorf("creating bill: %w", err)
		}

		if err := fresh.Complete(); err != nil {
			return err
		}
		if err := s.appts.UpdateStatus(txCtx, fresh); err != nil {
			return err
		}

		result = &CompletionResult{Appointment: fresh, Consultation: c, Bill: b}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "create",
		ResourceType: "consultation",
		ResourceID:   result.Consultation.ID.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"appointment_id":%q,"bill_id":%q}`, cmd.AppointmentID, result.Bill.ID),
	})

	return result, nil
}

// DeleteAppointment removes an appointment together with its consultation and
// bill, if any, as one atomic unit. Admin only.
func (s *SchedulingService) DeleteAppointment(ctx context.Context, actor authz.Actor, id uuid.UUID, ip string) error {
	if d := authz.Authorize(actor, authz.OpAppointmentDelete, authz.Target{}); !d.Allowed {
		return forbidden(d.Reason)
	}

	if _, err := s.appts.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.tx.RunAtomic(ctx, func(txCtx context.Context) error {
		c, err := s.consults.GetByAppointmentID(txCtx, id)
		switch {
		case err == nil:
			if err := s.bills.DeleteByConsultationID(txCtx, c.ID); err != nil {
				return fmt.Errorf("deleting bill: %w", err)
			}
			if err := s.consults.DeleteByAppointmentID(txCtx, id); err != nil {
				return fmt.Errorf("deleting consultation: %w", err)
			}
		case errors.Is(err, consultation.ErrConsultationNotFound):
			// nothing to cascade
		default:
			return err
		}
		return s.appts.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return nil
}
