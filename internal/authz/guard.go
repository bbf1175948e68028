// Package authz answers "may this actor perform this operation on this
// entity chain". It holds no state and never mutates anything; every service
// mutation consults it first and a denial stops the mutation before any write
// is attempted.
package authz

import (
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
)

// Actor is the resolved identity of the caller, passed explicitly into every
// service call. There is no ambient "current user".
type Actor struct {
	AccountID uuid.UUID
	Role      domain.Role
	// DoctorProfileID is set only for doctor accounts.
	DoctorProfileID *uuid.UUID
}

type Operation string

const (
	OpAppointmentRead     Operation = "appointment:read"
	OpAppointmentCreate   Operation = "appointment:create"
	OpAppointmentStatus   Operation = "appointment:set_status"
	OpAppointmentPropose  Operation = "appointment:propose_reschedule"
	OpAppointmentRespond  Operation = "appointment:respond_reschedule"
	OpAppointmentComplete Operation = "appointment:complete"
	OpAppointmentDelete   Operation = "appointment:delete"

	OpBillRead     Operation = "bill:read"
	OpBillMarkPaid Operation = "bill:mark_paid"
)

// Target carries the entity chain the operation touches. Links that could not
// be resolved stay nil; the guard treats a broken chain as a denial, never as
// an error.
type Target struct {
	Appointment *appointment.Appointment
	Pet         *pet.Pet
	Bill        *billing.Bill
}

type Decision struct {
	Allowed bool
	// Reason names the rule that fired, specific enough for the UI to show a
	// non-generic message.
	Reason string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// Authorize evaluates the access list top to bottom; the first applicable rule
// wins and anything unmatched is denied.
func Authorize(actor Actor, op Operation, t Target) Decision {
	// Rule 1: admins may perform any appointment or bill operation except
	// finalizing a consultation, which is strictly a doctor act.
	if actor.Role == domain.RoleAdmin {
		if op == OpAppointmentComplete {
			return deny("consultations are completed by the treating doctor")
		}
		return allow("admin role")
	}

	switch op {
	case OpAppointmentStatus, OpAppointmentPropose, OpAppointmentDelete:
		return deny("admin role required")

	case OpAppointmentComplete:
		return authorizeDoctor(actor, t)

	case OpAppointmentRead:
		if actor.Role == domain.RoleDoctor {
			return authorizeDoctor(actor, t)
		}
		return authorizeOwner(actor, t)

	case OpAppointmentCreate, OpAppointmentRespond:
		return authorizeOwner(actor, t)

	case OpBillRead:
		return authorizeBillOwner(actor, t)

	case OpBillMarkPaid:
		return deny("only administrators may mark bills paid")
	}

	return deny("operation not permitted for this role")
}

// authorizeDoctor allows a doctor to act only on appointments assigned to
// their own profile.
func authorizeDoctor(actor Actor, t Target) Decision {
	if actor.Role != domain.RoleDoctor {
		return deny("doctor role required")
	}
	if actor.DoctorProfileID == nil {
		return deny("account has no doctor profile")
	}
	if t.Appointment == nil {
		return deny("appointment not resolved")
	}
	if t.Appointment.DoctorID != *actor.DoctorProfileID {
		return deny("appointment is assigned to another doctor")
	}
	return allow("treating doctor")
}

// authorizeOwner resolves ownership through Appointment → Pet → OwnerID. Any
// missing link denies rather than panicking on an orphaned foreign key.
func authorizeOwner(actor Actor, t Target) Decision {
	if t.Pet == nil {
		return deny("ownership chain broken: pet not resolved")
	}
	if t.Pet.OwnerID != actor.AccountID {
		return deny("not the pet's owner")
	}
	return allow("pet owner")
}

// authorizeBillOwner walks Bill → Consultation → Appointment → Pet → OwnerID.
// The service resolves the chain; here only the resolved pet matters, and a
// broken chain denies.
func authorizeBillOwner(actor Actor, t Target) Decision {
	if t.Bill == nil {
		return deny("bill not resolved")
	}
	return authorizeOwner(actor, t)
}
