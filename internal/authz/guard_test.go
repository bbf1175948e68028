package authz

import (
	"strings"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
)

var (
	ownerID    = uuid.New()
	strangerID = uuid.New()
	doctorID   = uuid.New()
	profileID  = uuid.New()
	otherProf  = uuid.New()
)

func admin() Actor  { return Actor{AccountID: uuid.New(), Role: domain.RoleAdmin} }
func client(account uuid.UUID) Actor {
	return Actor{AccountID: account, Role: domain.RoleClient}
}
func doctorActor(profile uuid.UUID) Actor {
	p := profile
	return Actor{AccountID: doctorID, Role: domain.RoleDoctor, DoctorProfileID: &p}
}

func chain() Target {
	return Target{
		Appointment: &appointment.Appointment{DoctorID: profileID},
		Pet:         &pet.Pet{OwnerID: ownerID},
	}
}

func TestAdmin_AllowedEverywhereExceptComplete(t *testing.T) {
	ops := []Operation{
		OpAppointmentRead, OpAppointmentCreate, OpAppointmentStatus,
		OpAppointmentPropose, OpAppointmentRespond, OpAppointmentDelete,
		OpBillRead, OpBillMarkPaid,
	}
	for _, op := range ops {
		if d := Authorize(admin(), op, chain()); !d.Allowed {
			t.Fatalf("admin denied %s: %s", op, d.Reason)
		}
	}

	if d := Authorize(admin(), OpAppointmentComplete, chain()); d.Allowed {
		t.Fatalf("admin must not complete consultations")
	}
}

func TestDoctor_OwnAppointmentOnly(t *testing.T) {
	if d := Authorize(doctorActor(profileID), OpAppointmentComplete, chain()); !d.Allowed {
		t.Fatalf("treating doctor denied: %s", d.Reason)
	}
	if d := Authorize(doctorActor(profileID), OpAppointmentRead, chain()); !d.Allowed {
		t.Fatalf("treating doctor denied read: %s", d.Reason)
	}

	d := Authorize(doctorActor(otherProf), OpAppointmentComplete, chain())
	if d.Allowed {
		t.Fatalf("doctor allowed on another doctor's appointment")
	}
	if !strings.Contains(d.Reason, "another doctor") {
		t.Fatalf("expected specific reason, got %q", d.Reason)
	}
}

func TestDoctor_WithoutProfileDenied(t *testing.T) {
	a := Actor{AccountID: doctorID, Role: domain.RoleDoctor}
	if d := Authorize(a, OpAppointmentComplete, chain()); d.Allowed {
		t.Fatalf("doctor without profile must be denied")
	}
}

func TestClient_OwnershipChain(t *testing.T) {
	if d := Authorize(client(ownerID), OpAppointmentRespond, chain()); !d.Allowed {
		t.Fatalf("owner denied respond: %s", d.Reason)
	}

	d := Authorize(client(strangerID), OpAppointmentRespond, chain())
	if d.Allowed {
		t.Fatalf("non-owner allowed to respond")
	}
	if !strings.Contains(d.Reason, "owner") {
		t.Fatalf("expected ownership reason, got %q", d.Reason)
	}
}

func TestClient_BrokenChainDeniesInsteadOfPanicking(t *testing.T) {
	// Orphaned foreign key: appointment resolved but its pet is gone.
	target := Target{Appointment: &appointment.Appointment{DoctorID: profileID}}
	d := Authorize(client(ownerID), OpAppointmentRead, target)
	if d.Allowed {
		t.Fatalf("broken chain must deny")
	}
	if !strings.Contains(d.Reason, "chain broken") {
		t.Fatalf("expected chain-broken reason, got %q", d.Reason)
	}
}

func TestClient_AdminOnlyOperationsDenied(t *testing.T) {
	for _, op := range []Operation{OpAppointmentStatus, OpAppointmentPropose, OpAppointmentDelete, OpBillMarkPaid} {
		if d := Authorize(client(ownerID), op, chain()); d.Allowed {
			t.Fatalf("client allowed %s", op)
		}
	}
}

func TestBillRead(t *testing.T) {
	target := chain()
	target.Bill = &billing.Bill{}

	if d := Authorize(client(ownerID), OpBillRead, target); !d.Allowed {
		t.Fatalf("bill owner denied read: %s", d.Reason)
	}
	if d := Authorize(client(strangerID), OpBillRead, target); d.Allowed {
		t.Fatalf("stranger allowed to read bill")
	}

	// Bill with a broken chain is unreadable by clients.
	if d := Authorize(client(ownerID), OpBillRead, Target{Bill: &billing.Bill{}}); d.Allowed {
		t.Fatalf("broken bill chain must deny")
	}
}

func TestDefaultDeny_UnknownOperation(t *testing.T) {
	if d := Authorize(client(ownerID), Operation("pet:groom"), chain()); d.Allowed {
		t.Fatalf("unknown operation must be denied")
	}
}
