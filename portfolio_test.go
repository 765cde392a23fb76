package finlit

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPortfolioBuySellRoundTrip(t *testing.T) {
	l := testLedger(Rupees(100_000))
	p := NewPortfolio(l)

	if _, err := p.Buy("TCS", Q(5), Rupees(3500)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if !l.Balance().Equal(Rupees(82_500)) {
		t.Errorf("balance after buy = %s, want 82500", l.Balance())
	}
	if !p.Units("TCS").Equal(Q(5)) {
		t.Errorf("Units(TCS) = %s, want 5", p.Units("TCS"))
	}

	if _, err := p.Sell("TCS", Q(5), Rupees(3500)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if !l.Balance().Equal(Rupees(100_000)) {
		t.Errorf("balance after round trip = %s, want 100000", l.Balance())
	}
	if len(p.Holdings()) != 0 {
		t.Errorf("zero position must be removed, got %v", p.Holdings())
	}
}

func TestPortfolioBuyBlocked(t *testing.T) {
	l := testLedger(Rupees(100))
	p := NewPortfolio(l)

	_, err := p.Buy("AAPL", Q(1), Rupees(500))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Buy() error = %v, want ErrInsufficientFunds", err)
	}
	if !l.Balance().Equal(Rupees(100)) || len(l.Log()) != 0 {
		t.Error("blocked buy must leave the wallet untouched")
	}
	if !p.Units("AAPL").IsZero() {
		t.Error("blocked buy must not create a position")
	}
}

func TestPortfolioOversellBlocked(t *testing.T) {
	l := testLedger(Rupees(100_000))
	p := NewPortfolio(l)
	p.Buy("TSLA", Q(2), Rupees(18_000))

	balance := l.Balance()
	_, err := p.Sell("TSLA", Q(3), Rupees(18_000))
	if !errors.Is(err, ErrInsufficientHoldings) {
		t.Fatalf("Sell() error = %v, want ErrInsufficientHoldings", err)
	}
	if !l.Balance().Equal(balance) {
		t.Error("blocked sell must leave the wallet untouched")
	}
	if !p.Units("TSLA").Equal(Q(2)) {
		t.Errorf("Units(TSLA) = %s, want 2", p.Units("TSLA"))
	}
}

func TestPortfolioValue(t *testing.T) {
	l := testLedger(Rupees(200_000))
	p := NewPortfolio(l)
	m := NewMarket(rand.New(rand.NewSource(1)), DefaultStocks()...)

	p.Buy("RELIANCE", Q(10), m.Price("RELIANCE"))
	p.Buy("TCS", Q(2), m.Price("TCS"))

	want := Rupees(10 * 2500).Add(Rupees(2 * 3500))
	if got := p.Value(m); !got.Equal(want) {
		t.Errorf("Value() = %s, want %s", got, want)
	}
}
