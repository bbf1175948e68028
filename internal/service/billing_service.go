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
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingService owns the bill lifecycle after creation: reads scoped by
// ownership, and the one-way unpaid → paid flip.
type BillingService struct {
	bills    billing.Repository
	consults consultation.Repository
	appts    appointment.Repository
	pets     pet.Repository
	auditSvc *AuditService
	log      *zap.Logger
	now      func() time.Time
}

func NewBillingService(
	bills billing.Repository,
	consults consultation.Repository,
	appts appointment.Repository,
	pets pet.Repository,
	auditSvc *AuditService,
	log *zap.Logger,
) *BillingService {
	return &BillingService{
		bills:    bills,
		consults: consults,
		appts:    appts,
		pets:     pets,
		auditSvc: auditSvc,
		log:      log,
		now:      time.Now,
	}
}

// resolveChain walks Bill → Consultation → Appointment → Pet. Missing links
// come back nil so the guard can deny instead of the walk panicking on an
// orphaned foreign key.
func (s *BillingService) resolveChain(ctx context.Context, b *billing.Bill) (*appointment.Appointment, *pet.Pet, error) {
	c, err := s.consults.GetByID(ctx, b.ConsultationID)
	if err != nil {
		if errors.Is(err, consultation.ErrConsultationNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("resolving consultation: %w", err)
	}

	a, err := s.appts.GetByID(ctx, c.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("resolving appointment: %w", err)
	}

	p, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		if errors.Is(err, pet.ErrPetNotFound) {
			return a, nil, nil
		}
		return nil, nil, fmt.Errorf("resolving pet: %w", err)
	}
	return a, p, nil
}

func (s *BillingService) GetBill(ctx context.Context, actor authz.Actor, id uuid.UUID) (*billing.Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a, p, err := s.resolveChain(ctx, b)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpBillRead, authz.Target{Bill: b, Appointment: a, Pet: p}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	return b, nil
}

// ListBills returns every bill for admins and the owner's own bills for
// clients. Doctors have no billing surface.
func (s *BillingService) ListBills(ctx context.Context, actor authz.Actor) ([]*billing.Bill, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.bills.ListAll(ctx)
	case domain.RoleClient:
		return s.bills.ListByOwner(ctx, actor.AccountID)
	default:
		return nil, forbidden("no billing access for this role")
	}
}

// MarkPaid flips the bill to paid and stamps the payment date. Re-invocation
// fails with ErrAlreadyPaid; there is no unpay.
func (s *BillingService) MarkPaid(ctx context.Context, actor authz.Actor, id uuid.UUID, ip string) (*billing.Bill, error) {
	if d := authz.Authorize(actor, authz.OpBillMarkPaid, authz.Target{}); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "update",
		ResourceType: "bill",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"is_paid":true,"payment_date":%q}`, b.PaymentDate.Format(time.RFC3339)),
	})

	return b, nil
}
