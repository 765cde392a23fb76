package finlit

import (
	"math/rand"
	"sort"
)

// Stock is one listed instrument with its current price and how far it can
// swing in a single repricing.
type Stock struct {
	Symbol     string
	Name       string
	Price      Money
	Volatility float64 // max fractional swing per tick, e.g. 0.05
}

// FloorPrice is the lowest a stock can be repriced to.
var FloorPrice = Rupees(100)

// Market holds the listed stocks and reprices them with a bounded random
// walk. The random source is injected so simulations replay deterministically.
type Market struct {
	stocks map[string]*Stock
	rng    *rand.Rand
}

// NewMarket lists the given stocks with the provided random source.
func NewMarket(rng *rand.Rand, stocks ...Stock) *Market {
	m := &Market{stocks: make(map[string]*Stock), rng: rng}
	for _, s := range stocks {
		c := s
		m.stocks[s.Symbol] = &c
	}
	return m
}

// Price returns the current price for symbol, zero when unlisted.
func (m *Market) Price(symbol string) Money {
	if s, ok := m.stocks[symbol]; ok {
		return s.Price
	}
	return Rupees(0)
}

// Stocks returns the listed stocks sorted by symbol.
func (m *Market) Stocks() []Stock {
	out := make([]Stock, 0, len(m.stocks))
	for _, s := range m.stocks {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Tick reprices every stock once. Each price moves by a uniform random
// fraction within ±volatility, rounds to whole rupees, and never drops
// below FloorPrice.
func (m *Market) Tick() {
	for _, s := range m.stocks {
		change := (m.rng.Float64() - 0.5) * 2 * s.Volatility
		next := s.Price.Mul(Q(1 + change)).Round()
		if next.LessThan(FloorPrice) {
			next = FloorPrice
		}
		s.Price = next
	}
}

// DefaultStocks is the trading game's listing.
func DefaultStocks() []Stock {
	return []Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: Rupees(15000), Volatility: 0.03},
		{Symbol: "GOOGL", Name: "Google", Price: Rupees(12000), Volatility: 0.025},
		{Symbol: "TSLA", Name: "Tesla", Price: Rupees(18000), Volatility: 0.04},
		{Symbol: "RELIANCE", Name: "Reliance", Price: Rupees(2500), Volatility: 0.02},
		{Symbol: "TCS", Name: "Tata Consultancy", Price: Rupees(3500), Volatility: 0.022},
	}
}
