package partners

import (
	"fmt"
	"testing"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

// seatPartner enrolls, acknowledges, assigns trust totals, and optionally
// seats a wallet.
func seatPartner(t *testing.T, r *Registry, w, alias string, trust, tally float64, seatName string) {
	t.Helper()
	if _, err := r.Enroll(w, alias, ""); err != nil {
		t.Fatalf("Enroll(%s) failed: %v", alias, err)
	}
	if err := r.Acknowledge(w, ""); err != nil {
		t.Fatalf("Acknowledge(%s) failed: %v", alias, err)
	}
	if trust != 0 || tally != 0 {
		if _, err := r.UpdateStatus(w, trust, tally); err != nil {
			t.Fatalf("UpdateStatus(%s) failed: %v", alias, err)
		}
	}
	if seatName != "" {
		if _, err := r.AssignSeat(w, seatName); err != nil {
			t.Fatalf("AssignSeat(%s, %s) failed: %v", alias, seatName, err)
		}
	}
}

func TestRevokeSeat_SuccessionByBurnedTrust(t *testing.T) {
	log := audit.New(store.NewMemStore(), "")
	r := New(store.NewMemStore(), log, 65)

	w1, w2, w3, w4 := testWallet(1), testWallet(2), testWallet(3), testWallet(4)
	seatPartner(t, r, w1, "first", 50, 0, "seat-1")
	seatPartner(t, r, w2, "second", 80, 0, "seat-2")
	seatPartner(t, r, w3, "third", 20, 0, "seat-3")
	seatPartner(t, r, w4, "fourth", 90, 0, "") // highest trust, unseated

	seat, err := r.RevokeSeat("seat-2", "violation")
	if err != nil {
		t.Fatalf("RevokeSeat failed: %v", err)
	}
	if seat.Occupant != w4 {
		t.Fatalf("Expected successor %s, got: %s", w4, seat.Occupant)
	}
	if seat.Revoked {
		t.Errorf("Expected succeeded seat to be active again")
	}
	if seat.SucceededAt == nil {
		t.Errorf("Expected succession timestamp")
	}

	// The previous occupant lost seated status; the successor gained it.
	previous, err := r.Partner(w2)
	if err != nil {
		t.Fatalf("Partner failed: %v", err)
	}
	if previous.Status != StatusAcknowledged {
		t.Errorf("Expected revoked occupant demoted, got: %s", previous.Status)
	}
	successor, err := r.Partner(w4)
	if err != nil {
		t.Fatalf("Partner failed: %v", err)
	}
	if successor.Status != StatusSeated {
		t.Errorf("Expected successor seated, got: %s", successor.Status)
	}

	// Revocation is CRITICAL and names reason and successor.
	events, err := log.Events(audit.SeverityCritical)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventSeatRevoked {
		t.Fatalf("Expected one CRITICAL revocation event, got: %+v", events)
	}
	if events[0].Details["reason"] != "violation" || events[0].Details["filledBy"] != w4 {
		t.Errorf("Unexpected event details: %+v", events[0].Details)
	}
}

func TestRevokeSeat_TallyBreaksTrustTies(t *testing.T) {
	r, _ := newTestRegistry(t, 65)

	seatPartner(t, r, testWallet(1), "occupant", 99, 0, "seat-1")
	seatPartner(t, r, testWallet(2), "low-tally", 40, 5, "")
	seatPartner(t, r, testWallet(3), "high-tally", 40, 50, "")

	seat, err := r.RevokeSeat("seat-1", "inactivity")
	if err != nil {
		t.Fatalf("RevokeSeat failed: %v", err)
	}
	if seat.Occupant != testWallet(3) {
		t.Errorf("Expected tally tiebreaker to pick %s, got: %s", testWallet(3), seat.Occupant)
	}
}

func TestRevokeSeat_VacantWhenAllSeated(t *testing.T) {
	r, _ := newTestRegistry(t, 65)

	seatPartner(t, r, testWallet(1), "first", 50, 0, "seat-1")
	seatPartner(t, r, testWallet(2), "second", 80, 0, "seat-2")

	seat, err := r.RevokeSeat("seat-1", "violation")
	if err != nil {
		t.Fatalf("RevokeSeat failed: %v", err)
	}
	if seat.Occupant != "" || !seat.Revoked {
		t.Errorf("Expected vacant revoked seat, got: %+v", seat)
	}
}

func TestRevokeSeat_UnknownAndAlreadyRevoked(t *testing.T) {
	r, _ := newTestRegistry(t, 65)

	if _, err := r.RevokeSeat("seat-x", "whatever"); !cerrors.Is(err, cerrors.ErrSeatNotFound) {
		t.Errorf("Expected ErrSeatNotFound, got: %v", err)
	}

	seatPartner(t, r, testWallet(1), "only", 10, 0, "seat-1")
	if _, err := r.RevokeSeat("seat-1", "violation"); err != nil {
		t.Fatalf("RevokeSeat failed: %v", err)
	}
	if _, err := r.RevokeSeat("seat-1", "again"); !cerrors.Is(err, cerrors.ErrSeatRevoked) {
		t.Errorf("Expected ErrSeatRevoked, got: %v", err)
	}
}

func TestRankByBurnedTrust_Ordering(t *testing.T) {
	r, _ := newTestRegistry(t, 65)

	totals := []struct {
		trust, tally float64
	}{
		{30, 0}, {70, 10}, {70, 40}, {10, 99},
	}
	for i, tt := range totals {
		seatPartner(t, r, testWallet(i), fmt.Sprintf("partner-%d", i), tt.trust, tt.tally, "")
	}

	rankings, err := r.RankByBurnedTrust()
	if err != nil {
		t.Fatalf("RankByBurnedTrust failed: %v", err)
	}
	expected := []string{testWallet(2), testWallet(1), testWallet(0), testWallet(3)}
	for i, want := range expected {
		if rankings[i].Wallet != want {
			t.Errorf("Rank %d: expected %s, got: %s", i+1, want, rankings[i].Wallet)
		}
		if rankings[i].Rank != i+1 {
			t.Errorf("Expected rank %d, got: %d", i+1, rankings[i].Rank)
		}
	}
}
