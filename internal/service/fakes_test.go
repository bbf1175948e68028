package service

import (
	"context"
	"errors"
	"sort"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// -------------------------
// In-memory test repos
// -------------------------

type memPets struct {
	byID map[uuid.UUID]pet.Pet
}

func newMemPets() *memPets { return &memPets{byID: map[uuid.UUID]pet.Pet{}} }

func (r *memPets) Create(ctx context.Context, p *pet.Pet) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memPets) GetByID(ctx context.Context, id uuid.UUID) (*pet.Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, pet.ErrPetNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memPets) Update(ctx context.Context, id uuid.UUID, cmd *pet.UpdatePetCommand) (*pet.Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, pet.ErrPetNotFound
	}
	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Breed != nil {
		p.Breed = *cmd.Breed
	}
	if cmd.AgeYears != nil {
		p.AgeYears = *cmd.AgeYears
	}
	if cmd.WeightKg != nil {
		p.WeightKg = *cmd.WeightKg
	}
	if cmd.ImageURL != nil {
		p.ImageURL = *cmd.ImageURL
	}
	r.byID[id] = p
	cp := p
	return &cp, nil
}

func (r *memPets) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*pet.Pet, error) {
	out := make([]*pet.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memDoctors struct {
	byID map[uuid.UUID]doctor.Profile
}

func newMemDoctors() *memDoctors { return &memDoctors{byID: map[uuid.UUID]doctor.Profile{}} }

func (r *memDoctors) Create(ctx context.Context, p *doctor.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memDoctors) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memDoctors) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*doctor.Profile, error) {
	for _, p := range r.byID {
		if p.AccountID == accountID {
			cp := p
			return &cp, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *memDoctors) List(ctx context.Context) ([]*doctor.Profile, error) {
	out := make([]*doctor.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

// memAppts hands out copies and enforces the version check on writes, so two
// callers holding the same snapshot race exactly like they would against
// postgres.
type memAppts struct {
	byID map[uuid.UUID]appointment.Appointment
	pets *memPets
}

func newMemAppts(pets *memPets) *memAppts {
	return &memAppts{byID: map[uuid.UUID]appointment.Appointment{}, pets: pets}
}

func (r *memAppts) Create(ctx context.Context, a *appointment.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *memAppts) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := a
	return &cp, nil
}

func (r *memAppts) List(ctx context.Context, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	out := make([]*appointment.Appointment, 0)
	for _, a := range r.byID {
		if q.DoctorID != nil && a.DoctorID != *q.DoctorID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		if q.OwnerID != nil {
			p, ok := r.pets.byID[a.PetID]
			if !ok || p.OwnerID != *q.OwnerID {
				continue
			}
		}
		cp := a
		out = append(out, &cp)
	}
	return &appointment.PagedAppointments{
		Appointments: out,
		TotalCount:   int64(len(out)),
		Page:         q.Page,
		PageSize:     q.PageSize,
	}, nil
}

func (r *memAppts) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	stored, ok := r.byID[a.ID]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	if stored.Version != a.Version {
		return appointment.ErrVersionConflict
	}
	a.Version++
	r.byID[a.ID] = *a
	return nil
}

func (r *memAppts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(r.byID, id)
	return nil
}

type memConsults struct {
	byID map[uuid.UUID]consultation.Consultation
	// failCreate rigs Create to fail, for atomicity tests.
	failCreate error
}

func newMemConsults() *memConsults {
	return &memConsults{byID: map[uuid.UUID]consultation.Consultation{}}
}

func (r *memConsults) Create(ctx context.Context, c *consultation.Consultation) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.byID {
		if existing.AppointmentID == c.AppointmentID {
			return errors.New("repo: duplicate appointment_id")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *memConsults) GetByID(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, consultation.ErrConsultationNotFound
	}
	cp := c
	return &cp, nil
}

func (r *memConsults) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*consultation.Consultation, error) {
	for _, c := range r.byID {
		if c.AppointmentID == appointmentID {
			cp := c
			return &cp, nil
		}
	}
	return nil, consultation.ErrConsultationNotFound
}

func (r *memConsults) DeleteByAppointmentID(ctx context.Context, appointmentID uuid.UUID) error {
	for id, c := range r.byID {
		if c.AppointmentID == appointmentID {
			delete(r.byID, id)
		}
	}
	return nil
}

type memBills struct {
	byID       map[uuid.UUID]billing.Bill
	consults   *memConsults
	appts      *memAppts
	pets       *memPets
	failCreate error
}

func newMemBills(consults *memConsults, appts *memAppts, pets *memPets) *memBills {
	return &memBills{byID: map[uuid.UUID]billing.Bill{}, consults: consults, appts: appts, pets: pets}
}

func (r *memBills) Create(ctx context.Context, b *billing.Bill) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.byID {
		if existing.ConsultationID == b.ConsultationID {
			return errors.New("repo: duplicate consultation_id")
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.byID[b.ID] = *b
	return nil
}

func (r *memBills) GetByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, billing.ErrBillNotFound
	}
	cp := b
	return &cp, nil
}

func (r *memBills) GetByConsultationID(ctx context.Context, consultationID uuid.UUID) (*billing.Bill, error) {
	for _, b := range r.byID {
		if b.ConsultationID == consultationID {
			cp := b
			return &cp, nil
		}
	}
	return nil, billing.ErrBillNotFound
}

func (r *memBills) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*billing.Bill, error) {
	out := make([]*billing.Bill, 0)
	for _, b := range r.byID {
		c, ok := r.consults.byID[b.ConsultationID]
		if !ok {
			continue
		}
		a, ok := r.appts.byID[c.AppointmentID]
		if !ok {
			continue
		}
		p, ok := r.pets.byID[a.PetID]
		if !ok || p.OwnerID != ownerID {
			continue
		}
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBills) ListAll(ctx context.Context) ([]*billing.Bill, error) {
	out := make([]*billing.Bill, 0, len(r.byID))
	for _, b := range r.byID {
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBills) Update(ctx context.Context, b *billing.Bill) error {
	stored, ok := r.byID[b.ID]
	if !ok {
		return billing.ErrBillNotFound
	}
	if stored.Version != b.Version {
		return billing.ErrVersionConflict
	}
	b.Version++
	r.byID[b.ID] = *b
	return nil
}

func (r *memBills) DeleteByConsultationID(ctx context.Context, consultationID uuid.UUID) error {
	for id, b := range r.byID {
		if b.ConsultationID == consultationID {
			delete(r.byID, id)
		}
	}
	return nil
}

type memAudit struct{}

func (memAudit) Create(ctx context.Context, entry *domain.AuditLog) error { return nil }

// fakeTx snapshots the stores before fn and restores them if fn fails,
// mimicking a rolled-back database transaction.
type fakeTx struct {
	appts    *memAppts
	consults *memConsults
	bills    *memBills
}

func (t *fakeTx) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	apptSnap := make(map[uuid.UUID]appointment.Appointment, len(t.appts.byID))
	for k, v := range t.appts.byID {
		apptSnap[k] = v
	}
	consultSnap := make(map[uuid.UUID]consultation.Consultation, len(t.consults.byID))
	for k, v := range t.consults.byID {
		consultSnap[k] = v
	}
	billSnap := make(map[uuid.UUID]billing.Bill, len(t.bills.byID))
	for k, v := range t.bills.byID {
		billSnap[k] = v
	}

	if err := fn(ctx); err != nil {
		t.appts.byID = apptSnap
		t.consults.byID = consultSnap
		t.bills.byID = billSnap
		return err
	}
	return nil
}

// -------------------------
// Fixture
// -------------------------

type fixture struct {
	pets     *memPets
	doctors  *memDoctors
	appts    *memAppts
	consults *memConsults
	bills    *memBills
	sched    *SchedulingService
	billsSvc *BillingService
	petsSvc  *PetService
}

func newFixture() *fixture {
	pets := newMemPets()
	doctors := newMemDoctors()
	appts := newMemAppts(pets)
	consults := newMemConsults()
	bills := newMemBills(consults, appts, pets)
	tx := &fakeTx{appts: appts, consults: consults, bills: bills}

	log := zap.NewNop()
	audit := NewAuditService(memAudit{}, log)

	return &fixture{
		pets:     pets,
		doctors:  doctors,
		appts:    appts,
		consults: consults,
		bills:    bills,
		sched:    NewSchedulingService(appts, pets, doctors, consults, bills, tx, audit, log),
		billsSvc: NewBillingService(bills, consults, appts, pets, audit, log),
		petsSvc:  NewPetService(pets, audit, log),
	}
}
