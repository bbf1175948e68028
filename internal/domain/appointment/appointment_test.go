package appointment

import (
	"errors"
	"testing"
	"time"
)

var allStatuses = []Status{
	StatusPending,
	StatusAccepted,
	StatusRefused,
	StatusRescheduleProposed,
	StatusCompleted,
}

func allowed(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func TestTransitionTable_Exhaustive(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			a := &Appointment{Status: from}
			err := a.transitionTo(to)

			if allowed(from, to) {
				if err != nil {
					t.Fatalf("%s -> %s: expected success, got %v", from, to, err)
				}
				if a.Status != to {
					t.Fatalf("%s -> %s: status not applied, got %s", from, to, a.Status)
				}
				continue
			}

			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
			if a.Status != from {
				t.Fatalf("%s -> %s: status changed on rejected transition", from, to)
			}
		}
	}
}

func TestTransitionTo_UnknownStatusRejected(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	if err := a.transitionTo(Status("archived")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("status changed on invalid value")
	}
}

func TestConfirmDeny(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	if err := a.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if a.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", a.Status)
	}

	b := &Appointment{Status: StatusPending}
	if err := b.Deny(); err != nil {
		t.Fatalf("Deny: %v", err)
	}
	if b.Status != StatusRefused {
		t.Fatalf("expected refused, got %s", b.Status)
	}
}

func TestProposeReschedule_SetsStatusAndTimeTogether(t *testing.T) {
	t1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	a := &Appointment{Status: StatusPending, ScheduledAt: t1}
	if err := a.ProposeReschedule(t2); err != nil {
		t.Fatalf("ProposeReschedule: %v", err)
	}
	if a.Status != StatusRescheduleProposed {
		t.Fatalf("expected reschedule_proposed, got %s", a.Status)
	}
	if !a.ScheduledAt.Equal(t2) {
		t.Fatalf("expected scheduled time %v, got %v", t2, a.ScheduledAt)
	}
}

func TestProposeReschedule_IllegalSourceLeavesTimeUntouched(t *testing.T) {
	t1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	a := &Appointment{Status: StatusRefused, ScheduledAt: t1}
	if err := a.ProposeReschedule(t2); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if !a.ScheduledAt.Equal(t1) {
		t.Fatalf("scheduled time changed on rejected transition")
	}
}

func TestRespondToReschedule(t *testing.T) {
	a := &Appointment{Status: StatusRescheduleProposed}
	if err := a.RespondToReschedule(true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if a.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", a.Status)
	}

	b := &Appointment{Status: StatusRescheduleProposed}
	if err := b.RespondToReschedule(false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if b.Status != StatusRefused {
		t.Fatalf("expected refused, got %s", b.Status)
	}

	c := &Appointment{Status: StatusPending}
	if err := c.RespondToReschedule(true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from pending, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	a := &Appointment{Status: StatusAccepted}
	if err := a.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", a.Status)
	}

	if err := a.Complete(); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted on re-completion, got %v", err)
	}

	// Completion requires prior admin confirmation.
	b := &Appointment{Status: StatusPending}
	if err := b.Complete(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from pending, got %v", err)
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range allStatuses {
		wantTerminal := s == StatusCompleted || s == StatusRefused
		if s.IsTerminal() != wantTerminal {
			t.Fatalf("IsTerminal(%s) = %v, want %v", s, s.IsTerminal(), wantTerminal)
		}
	}
}
