package finlit

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientHoldings reports a sell of more units than held.
var ErrInsufficientHoldings = errors.New("insufficient holdings")

// Holding is one position in the portfolio.
type Holding struct {
	Symbol string
	Units  Quantity
}

// Portfolio maps stock symbols to whole-unit positions, settled against a
// single wallet. Buys and sells are atomic: a rejected order leaves both
// the wallet and the positions untouched.
type Portfolio struct {
	wallet    *Ledger
	positions map[string]Quantity
}

// NewPortfolio creates an empty portfolio settling against the given wallet.
func NewPortfolio(wallet *Ledger) *Portfolio {
	return &Portfolio{wallet: wallet, positions: make(map[string]Quantity)}
}

// Units returns the position held for symbol, zero when absent.
func (p *Portfolio) Units(symbol string) Quantity { return p.positions[symbol] }

// Holdings returns all non-zero positions sorted by symbol.
func (p *Portfolio) Holdings() []Holding {
	hs := make([]Holding, 0, len(p.positions))
	for sym, units := range p.positions {
		hs = append(hs, Holding{Symbol: sym, Units: units})
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].Symbol < hs[j].Symbol })
	return hs
}

// Value prices the whole portfolio at the given market's current prices.
func (p *Portfolio) Value(m *Market) Money {
	total := Rupees(0)
	for sym, units := range p.positions {
		total = total.Add(m.Price(sym).Mul(units))
	}
	return total
}

// Buy purchases units of symbol at price per unit. The order is rejected
// with ErrInsufficientFunds when the wallet cannot cover it.
func (p *Portfolio) Buy(symbol string, units Quantity, price Money) (Transaction, error) {
	if !units.IsPositive() {
		return Transaction{}, fmt.Errorf("buy %s %s: units must be positive", units, symbol)
	}
	cost := price.Mul(units).Round()
	tx, err := p.wallet.Spend(cost, fmt.Sprintf("buy %s %s @ %s", units, symbol, price))
	if err != nil {
		return Transaction{}, fmt.Errorf("buy %s %s: %w", units, symbol, err)
	}
	p.positions[symbol] = p.positions[symbol].Add(units)
	return tx, nil
}

// Sell liquidates units of symbol at price per unit. Overselling is rejected
// with ErrInsufficientHoldings; a position sold down to zero is removed.
func (p *Portfolio) Sell(symbol string, units Quantity, price Money) (Transaction, error) {
	if !units.IsPositive() {
		return Transaction{}, fmt.Errorf("sell %s %s: units must be positive", units, symbol)
	}
	held := p.positions[symbol]
	if held.LessThan(units) {
		return Transaction{}, fmt.Errorf("sell %s %s holding %s: %w", units, symbol, held, ErrInsufficientHoldings)
	}
	proceeds := price.Mul(units).Round()
	tx, err := p.wallet.Credit(proceeds, fmt.Sprintf("sell %s %s @ %s", units, symbol, price))
	if err != nil {
		return Transaction{}, fmt.Errorf("sell %s %s: %w", units, symbol, err)
	}
	rest := held.Sub(units)
	if rest.IsZero() {
		delete(p.positions, symbol)
	} else {
		p.positions[symbol] = rest
	}
	return tx, nil
}
