package sim

import (
	"math/rand"
	"testing"

	"github.com/finlit/finlit"
)

func TestBudgetChallengeRejectsBadAllocation(t *testing.T) {
	alloc := DefaultAllocation()
	alloc.Fun = finlit.Rupees(9000) // total 29000 over a 25000 salary
	if _, err := NewBudgetChallenge(finlit.DefaultState("asha"), rand.New(rand.NewSource(1)), alloc); err == nil {
		t.Error("over-allocated budget expected error")
	}
}

func TestBudgetChallengeSkippingEverything(t *testing.T) {
	state := finlit.DefaultState("asha")
	s, err := NewBudgetChallenge(state, rand.New(rand.NewSource(2)), DefaultAllocation())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	events := 0
	for !s.Done() {
		if s.Pending() == nil {
			t.Fatalf("month %d: the challenge must always throw an event", s.Period())
		}
		events++
		if err := s.Resolve(false); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if events != BudgetMonths {
		t.Fatalf("events = %d, want %d", events, BudgetMonths)
	}
	// skipping every event banks the full 5000 savings each month
	sum := s.Summary()
	if !sum.NetChange.Equal(finlit.Rupees(15_000)) {
		t.Errorf("NetChange = %s, want 15000", sum.NetChange)
	}
	if sum.Grade != "A" {
		t.Errorf("Grade = %s, want A", sum.Grade)
	}
}

func TestBudgetChallengePayingEverythingCosts(t *testing.T) {
	state := finlit.DefaultState("asha")
	s, err := NewBudgetChallenge(state, rand.New(rand.NewSource(3)), DefaultAllocation())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	paidOut := finlit.Rupees(0)
	for !s.Done() {
		if s.Pending() != nil {
			paidOut = paidOut.Add(s.Pending().Cost)
			if err := s.Resolve(true); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	sum := s.Summary()
	want := finlit.Rupees(15_000).Sub(paidOut)
	if !sum.NetChange.Equal(want) {
		t.Errorf("NetChange = %s, want %s", sum.NetChange, want)
	}
	// even the cheapest run pays 2500+5000+6000, far off the A threshold
	if sum.NetChange.GreaterThanOrEqual(finlit.Rupees(12_000)) || sum.Grade == "A" {
		t.Errorf("paying every event cannot grade A, got %s with %s", sum.Grade, sum.NetChange)
	}
}

func TestBudgetEventsPerMonth(t *testing.T) {
	for month := 1; month <= BudgetMonths; month++ {
		if got := budgetEvents(month); len(got) != 2 {
			t.Errorf("month %d catalog = %d events, want 2", month, len(got))
		}
	}
	if budgetEvents(4) != nil {
		t.Error("month 4 must have no catalog")
	}
}
