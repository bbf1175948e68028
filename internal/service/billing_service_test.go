package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/google/uuid"
)

// completeOne drives a full lifecycle so a bill exists to test against.
func completeOne(t *testing.T, f *fixture) *CompletionResult {
	t.Helper()
	a := createPending(t, f)
	acceptAppointment(t, f, a.ID)

	res, err := f.sched.CompleteConsultation(context.Background(), docActor(a.DoctorID), &consultation.CompleteConsultationCommand{
		AppointmentID: a.ID,
		Diagnosis:     "Otitis",
		Treatment:     "Ear drops",
		ServiceCost:   45.00,
	}, "")
	if err != nil {
		t.Fatalf("completing consultation: %v", err)
	}
	return res
}

func TestMarkPaid_HappyPath(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	paid, err := f.billsSvc.MarkPaid(context.Background(), adminActor(), res.Bill.ID, "")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if !paid.IsPaid {
		t.Fatalf("bill not marked paid")
	}
	if paid.PaymentDate == nil {
		t.Fatalf("payment date not set")
	}
	if paid.TotalAmount != 45.00 {
		t.Fatalf("total changed on payment: %v", paid.TotalAmount)
	}
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	if _, err := f.billsSvc.MarkPaid(context.Background(), adminActor(), res.Bill.ID, ""); err != nil {
		t.Fatalf("first MarkPaid: %v", err)
	}
	_, err := f.billsSvc.MarkPaid(context.Background(), adminActor(), res.Bill.ID, "")
	if !errors.Is(err, billing.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestMarkPaid_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.billsSvc.MarkPaid(context.Background(), adminActor(), uuid.New(), "")
	if !errors.Is(err, billing.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestMarkPaid_NonAdminForbidden(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	_, err := f.billsSvc.MarkPaid(context.Background(), ownerActor(), res.Bill.ID, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	stored, _ := f.bills.GetByID(context.Background(), res.Bill.ID)
	if stored.IsPaid {
		t.Fatalf("bill paid despite denial")
	}
}

func TestGetBill_OwnerAndStranger(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	if _, err := f.billsSvc.GetBill(context.Background(), ownerActor(), res.Bill.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.billsSvc.GetBill(context.Background(), adminActor(), res.Bill.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := f.billsSvc.GetBill(context.Background(), strangerActor(), res.Bill.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
}

func TestGetBill_BrokenChainDeniesForClient(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	// Orphan the chain below the bill.
	delete(f.consults.byID, res.Consultation.ID)

	if _, err := f.billsSvc.GetBill(context.Background(), ownerActor(), res.Bill.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden on broken chain, got %v", err)
	}
	// Admin still sees it.
	if _, err := f.billsSvc.GetBill(context.Background(), adminActor(), res.Bill.ID); err != nil {
		t.Fatalf("admin read on broken chain: %v", err)
	}
}

func TestListBills_Scoping(t *testing.T) {
	f := newFixture()
	completeOne(t, f)

	mine, err := f.billsSvc.ListBills(context.Background(), ownerActor())
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 bill for owner, got %d", len(mine))
	}

	others, err := f.billsSvc.ListBills(context.Background(), strangerActor())
	if err != nil {
		t.Fatalf("stranger list: %v", err)
	}
	if len(others) != 0 {
		t.Fatalf("stranger sees %d bills", len(others))
	}

	all, err := f.billsSvc.ListBills(context.Background(), adminActor())
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 bill total, got %d", len(all))
	}
}

func TestListBills_ExcludesBrokenChains(t *testing.T) {
	f := newFixture()
	res := completeOne(t, f)

	// Orphan the chain; the owner's list must skip the bill instead of failing.
	delete(f.appts.byID, res.Appointment.ID)

	mine, err := f.billsSvc.ListBills(context.Background(), ownerActor())
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("broken-chain bill leaked into owner list")
	}
}
