package cmd

import (
	"testing"

	"github.com/finlit/finlit"
	"github.com/google/subcommands"
)

func TestQuote(t *testing.T) {
	price, err := quote("AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(finlit.Rupees(15_000)) {
		t.Errorf("quote(AAPL) = %s, want ₹15,000", price)
	}
	if _, err := quote("NOPE"); err == nil {
		t.Error("expected an error for an unknown symbol")
	}
}

func TestParseUnits(t *testing.T) {
	units, err := parseUnits("7")
	if err != nil {
		t.Fatal(err)
	}
	if units.IntPart() != 7 {
		t.Errorf("parseUnits(7) = %s", units)
	}
	for _, bad := range []string{"0", "-3", "2.5", "many"} {
		if _, err := parseUnits(bad); err == nil {
			t.Errorf("parseUnits(%q) should fail", bad)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	*stateDir = t.TempDir()
	*account = "tester"

	state := loadState()
	if _, err := state.Wallet.Credit(finlit.Rupees(5_000), "scholarship"); err != nil {
		t.Fatal(err)
	}
	if got := saveState(state); got != subcommands.ExitSuccess {
		t.Fatalf("saveState = %v", got)
	}

	reloaded := loadState()
	want := finlit.StartingBalance.Add(finlit.Rupees(5_000))
	if !reloaded.Wallet.Balance().Equal(want) {
		t.Errorf("reloaded balance = %s, want %s", reloaded.Wallet.Balance(), want)
	}
}

func TestRupeeInt(t *testing.T) {
	if got := rupeeInt(finlit.Rupees(8_000)); got != 8000 {
		t.Errorf("rupeeInt = %d", got)
	}
}
