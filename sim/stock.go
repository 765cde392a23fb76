package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/finlit/finlit"
)

// StockSeedMoney funds the trading game's dedicated wallet.
var StockSeedMoney = finlit.Rupees(100_000)

// StockDays is how many trading days the game runs.
const StockDays = 30

// StockGame is the 30-day trading session: a dedicated cash wallet, a
// portfolio, and a market that reprices once per day. Any number of orders
// may be placed before advancing the day. It is graded on total value
// against the seed money, so it plays on its own wallet rather than the
// learner's.
type StockGame struct {
	session   *Session
	market    *finlit.Market
	portfolio *finlit.Portfolio
	trades    int
}

// NewStockGame seeds the trading wallet, lists the default stocks, and
// opens day 1.
func NewStockGame(state *finlit.State, rng *rand.Rand) (*StockGame, error) {
	wallet := finlit.NewLedger(StockSeedMoney)
	g := &StockGame{
		market:    finlit.NewMarket(rng, finlit.DefaultStocks()...),
		portfolio: finlit.NewPortfolio(wallet),
	}
	cfg := Config{
		Kind:    "stock-trading",
		Periods: StockDays,
		OnPeriodEnd: func(s *Session) error {
			g.market.Tick()
			return nil
		},
		Summarize: func(s *Session, sum *Summary) {
			total := s.Wallet().Balance().Add(g.portfolio.Value(g.market))
			profit := total.Sub(StockSeedMoney)
			sum.FinalBalance = total
			sum.NetChange = profit
			sum.Grade = stockGrade(profit)
			sum.Remarks = append(sum.Remarks,
				fmt.Sprintf("cash %s, stocks %s, %d trades over %d days",
					s.Wallet().Balance(), g.portfolio.Value(g.market), g.trades, StockDays))
		},
		Pacing: time.Second,
	}
	g.session = NewOn(cfg, state, wallet, rng)
	if err := g.session.Start(); err != nil {
		return nil, err
	}
	return g, nil
}

func stockGrade(profit finlit.Money) string {
	switch {
	case profit.GreaterThanOrEqual(finlit.Rupees(20_000)):
		return "A"
	case profit.GreaterThanOrEqual(finlit.Rupees(10_000)):
		return "B"
	case !profit.IsNegative():
		return "C"
	case profit.GreaterThanOrEqual(finlit.Rupees(-10_000)):
		return "D"
	default:
		return "F"
	}
}

// Day returns the current trading day, 1-based.
func (g *StockGame) Day() int { return g.session.Period() }

// Cash returns the game wallet balance.
func (g *StockGame) Cash() finlit.Money { return g.session.Wallet().Balance() }

// Market returns the game's market for price display.
func (g *StockGame) Market() *finlit.Market { return g.market }

// Holdings returns the current positions.
func (g *StockGame) Holdings() []finlit.Holding { return g.portfolio.Holdings() }

// Buy places a market-price buy order for the day.
func (g *StockGame) Buy(symbol string, units finlit.Quantity) error {
	if g.session.Done() {
		return fmt.Errorf("buy: %w", ErrBadStep)
	}
	price := g.market.Price(symbol)
	if !price.IsPositive() {
		return fmt.Errorf("buy %s: unknown symbol", symbol)
	}
	if _, err := g.portfolio.Buy(symbol, units, price); err != nil {
		return err
	}
	g.trades++
	g.decide(fmt.Sprintf("buy %s %s @ %s", units, symbol, price))
	return nil
}

// Sell places a market-price sell order for the day.
func (g *StockGame) Sell(symbol string, units finlit.Quantity) error {
	if g.session.Done() {
		return fmt.Errorf("sell: %w", ErrBadStep)
	}
	price := g.market.Price(symbol)
	if !price.IsPositive() {
		return fmt.Errorf("sell %s: unknown symbol", symbol)
	}
	if _, err := g.portfolio.Sell(symbol, units, price); err != nil {
		return err
	}
	g.trades++
	g.decide(fmt.Sprintf("sell %s %s @ %s", units, symbol, price))
	return nil
}

func (g *StockGame) decide(choice string) {
	g.session.State().Decide(finlit.Decision{
		Simulation: "stock-trading",
		Period:     g.Day(),
		Choice:     choice,
		Time:       time.Now(),
	})
}

// NextDay closes the trading day and reprices the market.
func (g *StockGame) NextDay() error { return g.session.Advance() }

// Done reports whether all trading days are over.
func (g *StockGame) Done() bool { return g.session.Done() }

// Summary returns the graded report, nil until Done.
func (g *StockGame) Summary() *Summary { return g.session.Summary() }
