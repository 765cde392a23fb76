package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/finlit/finlit"
)

func TestStockGameRunsThirtyDays(t *testing.T) {
	state := finlit.DefaultState("asha")
	g, err := NewStockGame(state, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewStockGame() error = %v", err)
	}
	if g.Day() != 1 {
		t.Fatalf("Day() = %d, want 1", g.Day())
	}
	if !g.Cash().Equal(StockSeedMoney) {
		t.Fatalf("Cash() = %s, want %s", g.Cash(), StockSeedMoney)
	}

	if err := g.Buy("RELIANCE", finlit.Q(10)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	for !g.Done() {
		if err := g.NextDay(); err != nil {
			t.Fatalf("NextDay() error = %v", err)
		}
	}
	sum := g.Summary()
	if sum == nil || sum.Kind != "stock-trading" {
		t.Fatalf("Summary() = %+v", sum)
	}
	// total is cash plus priced holdings
	want := g.Cash().Add(g.Market().Price("RELIANCE").Mul(finlit.Q(10)))
	if !sum.FinalBalance.Equal(want) {
		t.Errorf("FinalBalance = %s, want %s", sum.FinalBalance, want)
	}
	if err := g.NextDay(); !errors.Is(err, ErrBadStep) {
		t.Errorf("NextDay() after the last day error = %v, want ErrBadStep", err)
	}
	if err := g.Buy("TCS", finlit.Q(1)); !errors.Is(err, ErrBadStep) {
		t.Errorf("Buy() after the last day error = %v, want ErrBadStep", err)
	}
}

func TestStockGameGrading(t *testing.T) {
	tests := []struct {
		profit int
		want   string
	}{
		{25_000, "A"},
		{20_000, "A"},
		{12_000, "B"},
		{0, "C"},
		{-5000, "D"},
		{-15_000, "F"},
	}
	for _, tc := range tests {
		got := stockGrade(finlit.Rupees(tc.profit))
		if got != tc.want {
			t.Errorf("grade(%d) = %s, want %s", tc.profit, got, tc.want)
		}
	}
}

func TestStockGameRejectsUnknownSymbol(t *testing.T) {
	g, err := NewStockGame(finlit.DefaultState("asha"), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Buy("DOGE", finlit.Q(1)); err == nil {
		t.Error("Buy(DOGE) expected error")
	}
	if err := g.Sell("DOGE", finlit.Q(1)); err == nil {
		t.Error("Sell(DOGE) expected error")
	}
}

func TestStockGameBlocksOverspending(t *testing.T) {
	g, err := NewStockGame(finlit.DefaultState("asha"), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	// 100 units of AAPL at 15000 is far over the seed money
	if err := g.Buy("AAPL", finlit.Q(100)); !errors.Is(err, finlit.ErrInsufficientFunds) {
		t.Errorf("Buy() error = %v, want ErrInsufficientFunds", err)
	}
	if err := g.Sell("AAPL", finlit.Q(1)); !errors.Is(err, finlit.ErrInsufficientHoldings) {
		t.Errorf("Sell() error = %v, want ErrInsufficientHoldings", err)
	}
}

func TestStockGameTradesLandOnDecisionTrail(t *testing.T) {
	state := finlit.DefaultState("asha")
	g, err := NewStockGame(state, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	g.Buy("TCS", finlit.Q(2))
	g.Sell("TCS", finlit.Q(1))
	if len(state.Decisions) != 2 {
		t.Errorf("decisions = %d, want 2", len(state.Decisions))
	}
	// the game's money never touches the learner's wallet
	if !state.Wallet.Balance().Equal(finlit.StartingBalance) {
		t.Errorf("learner balance = %s, want untouched %s", state.Wallet.Balance(), finlit.StartingBalance)
	}
}
