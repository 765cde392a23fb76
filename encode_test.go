package finlit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStateRoundTrip(t *testing.T) {
	s := DefaultState("asha")
	s.Wallet.Credit(Rupees(20_000), "salary")
	s.Loans.Take(Rupees(30_000), decimal.NewFromInt(12), 12, "bike")
	s.Portfolio.Buy("TCS", Q(3), Rupees(3500))
	s.CompleteLesson("l1", true)
	s.CompleteSimulation("loan")
	s.Decide(Decision{Simulation: "loan", Period: 1, Choice: "pay-emi"})

	var buf bytes.Buffer
	if err := EncodeState(&buf, s); err != nil {
		t.Fatalf("EncodeState() error = %v", err)
	}

	got, err := DecodeState(&buf)
	if err != nil {
		t.Fatalf("DecodeState() error = %v", err)
	}
	if !got.Wallet.Balance().Equal(s.Wallet.Balance()) {
		t.Errorf("balance = %s, want %s", got.Wallet.Balance(), s.Wallet.Balance())
	}
	if len(got.Wallet.Log()) != len(s.Wallet.Log()) {
		t.Errorf("log length = %d, want %d", len(got.Wallet.Log()), len(s.Wallet.Log()))
	}
	for i, tx := range got.Wallet.Log() {
		if !tx.Equal(s.Wallet.Log()[i]) {
			t.Errorf("log[%d] = %+v, want %+v", i, tx, s.Wallet.Log()[i])
		}
	}
	if len(got.Loans.Active()) != 1 || !got.Loans.Active()[0].EMI.Equal(Rupees(2665)) {
		t.Errorf("loans = %+v", got.Loans.Active())
	}
	if !got.Portfolio.Units("TCS").Equal(Q(3)) {
		t.Errorf("Units(TCS) = %s, want 3", got.Portfolio.Units("TCS"))
	}
	if got.User.Level != s.User.Level || got.User.XP != s.User.XP {
		t.Errorf("user = %+v, want %+v", got.User, s.User)
	}
	if len(got.Progress.CompletedLessons) != 1 || got.Progress.CompletedLessons[0] != "l1" {
		t.Errorf("completed lessons = %v", got.Progress.CompletedLessons)
	}
	if len(got.Decisions) != 1 || got.Decisions[0].Choice != "pay-emi" {
		t.Errorf("decisions = %+v", got.Decisions)
	}
}

func TestDecodedLoansShareTheWallet(t *testing.T) {
	s := DefaultState("asha")
	s.Loans.Take(Rupees(30_000), decimal.NewFromInt(12), 12, "bike")

	var buf bytes.Buffer
	EncodeState(&buf, s)
	got, err := DecodeState(&buf)
	if err != nil {
		t.Fatalf("DecodeState() error = %v", err)
	}

	before := got.Wallet.Balance()
	id := got.Loans.Active()[0].ID
	if _, _, _, err := got.Loans.AdvancePeriod(id); err != nil {
		t.Fatalf("AdvancePeriod() error = %v", err)
	}
	if !got.Wallet.Balance().Equal(before.Sub(Rupees(2665))) {
		t.Error("decoded loan book must debit the decoded wallet")
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	for _, blob := range []string{"", "not json", `{"user": 42}`, `[1,2,3]`} {
		if _, err := DecodeState(strings.NewReader(blob)); err == nil {
			t.Errorf("DecodeState(%q) expected error", blob)
		}
	}
}

func TestEncodeStateFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeState(&buf, DefaultState("asha")); err != nil {
		t.Fatalf("EncodeState() error = %v", err)
	}
	out := buf.String()
	order := []string{`"user"`, `"wallet"`, `"progress"`, `"achievements"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx < 0 || idx < last {
			t.Fatalf("key %s out of order in %s", key, out)
		}
		last = idx
	}
	if !strings.Contains(out, `"balance":10000`) {
		t.Errorf("starting balance missing from %s", out)
	}
}
