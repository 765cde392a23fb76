// Package sim implements the period-based simulation engine behind the
// learning games: one generic state machine parameterized by period count,
// per-period economics, an event catalog with a draw probability, and a
// grading function. The loan walkthrough, budget challenge, stock game and
// tax planner are configurations of this engine, not separate machines.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/finlit/finlit"
)

// Step identifies where a session is in its lifecycle.
type Step string

const (
	StepIntro   Step = "intro"
	StepRunning Step = "running"
	// StepEvent waits for the player to pay or skip a drawn event.
	StepEvent   Step = "event"
	StepSummary Step = "summary"
)

// ErrBadStep reports an operation called out of order.
var ErrBadStep = errors.New("not allowed in this step")

// Event is one entry of a simulation's random-event catalog.
type Event struct {
	Text     string
	Cost     finlit.Money
	Category string
}

// EventRecord is a resolved event with the player's choice.
type EventRecord struct {
	Event
	Period int
	Paid   bool
}

// Summary is the terminal report of a session.
type Summary struct {
	Kind           string
	StartBalance   finlit.Money
	FinalBalance   finlit.Money
	NetChange      finlit.Money
	MissedPayments int
	Grade          string
	Remarks        []string
}

// Config parameterizes one simulation kind.
type Config struct {
	Kind    string
	Periods int

	// Events returns the catalog a period draws from, nil for none.
	Events           func(period int) []Event
	EventProbability float64

	// Begin runs on session start, before period 1.
	Begin func(s *Session) error
	// OnPeriodStart runs at the top of each period (salary credits).
	OnPeriodStart func(s *Session) error
	// OnPeriodEnd runs when a period is advanced (mandatory debits). A
	// negative wallet balance right after it counts as a missed payment.
	OnPeriodEnd func(s *Session) error

	// Summarize grades the finished run.
	Summarize func(s *Session, sum *Summary)

	// Pacing is the suggested display delay between periods. The engine
	// never sleeps; interactive callers may.
	Pacing time.Duration
}

// Session is one run of a simulation against a wallet. It is not safe for
// concurrent use; there is a single player.
type Session struct {
	cfg    Config
	state  *finlit.State
	wallet *finlit.Ledger
	rng    *rand.Rand

	step         Step
	period       int
	startBalance finlit.Money
	pending      *Event
	history      []EventRecord
	missed       int
	summary      *Summary
}

// New creates a session in its intro step. The wallet the simulation
// plays against is taken from state.
func New(cfg Config, state *finlit.State, rng *rand.Rand) *Session {
	return NewOn(cfg, state, state.Wallet, rng)
}

// NewOn creates a session playing on a dedicated wallet instead of the
// learner's main one. Decisions and completion still land on state.
func NewOn(cfg Config, state *finlit.State, wallet *finlit.Ledger, rng *rand.Rand) *Session {
	return &Session{cfg: cfg, state: state, wallet: wallet, rng: rng, step: StepIntro}
}

// Kind returns the simulation kind.
func (s *Session) Kind() string { return s.cfg.Kind }

// Step returns the current lifecycle step.
func (s *Session) Step() Step { return s.step }

// Period returns the current period, 1-based, zero before start.
func (s *Session) Period() int { return s.period }

// Periods returns the configured period count.
func (s *Session) Periods() int { return s.cfg.Periods }

// Pacing returns the suggested display delay between periods.
func (s *Session) Pacing() time.Duration { return s.cfg.Pacing }

// State returns the learner state the session plays against.
func (s *Session) State() *finlit.State { return s.state }

// Wallet returns the wallet the session's economics flow through.
func (s *Session) Wallet() *finlit.Ledger { return s.wallet }

// StartBalance returns the wallet balance captured on Start.
func (s *Session) StartBalance() finlit.Money { return s.startBalance }

// History returns the resolved events so far.
func (s *Session) History() []EventRecord { return s.history }

// Missed returns the missed-payment count so far.
func (s *Session) Missed() int { return s.missed }

// Start leaves the intro: it runs the configured Begin hook, snapshots the
// start balance, and opens period 1.
func (s *Session) Start() error {
	if s.step != StepIntro {
		return fmt.Errorf("start: %w", ErrBadStep)
	}
	if s.cfg.Begin != nil {
		if err := s.cfg.Begin(s); err != nil {
			return err
		}
	}
	s.startBalance = s.wallet.Balance()
	s.period = 1
	s.step = StepRunning
	return s.openPeriod()
}

func (s *Session) openPeriod() error {
	if s.cfg.OnPeriodStart != nil {
		if err := s.cfg.OnPeriodStart(s); err != nil {
			return err
		}
	}
	s.drawEvent()
	return nil
}

func (s *Session) drawEvent() {
	if s.cfg.Events == nil {
		return
	}
	catalog := s.cfg.Events(s.period)
	if len(catalog) == 0 || s.rng.Float64() >= s.cfg.EventProbability {
		return
	}
	ev := catalog[s.rng.Intn(len(catalog))]
	s.pending = &ev
	s.step = StepEvent
}

// Pending returns the event awaiting a decision, nil when there is none.
func (s *Session) Pending() *Event { return s.pending }

// Resolve settles the pending event: pay debits its cost (the wallet may go
// negative), skip records the refusal. Either way the session returns to
// running and the choice lands in the decision trail.
func (s *Session) Resolve(pay bool) error {
	if s.step != StepEvent || s.pending == nil {
		return fmt.Errorf("resolve: %w", ErrBadStep)
	}
	ev := *s.pending
	if pay {
		if _, err := s.wallet.Debit(ev.Cost, s.cfg.Kind+": "+ev.Text); err != nil {
			return err
		}
	}
	s.history = append(s.history, EventRecord{Event: ev, Period: s.period, Paid: pay})
	choice := "skip"
	if pay {
		choice = "pay"
	}
	s.state.Decide(finlit.Decision{
		Simulation: s.cfg.Kind,
		Period:     s.period,
		Choice:     choice + ": " + ev.Text,
		Time:       time.Now(),
	})
	s.pending = nil
	s.step = StepRunning
	return nil
}

// Advance closes the current period: it runs the mandatory period-end
// economics, counts a missed payment if they left the wallet negative, and
// either opens the next period or grades the run.
func (s *Session) Advance() error {
	if s.step != StepRunning {
		return fmt.Errorf("advance: %w", ErrBadStep)
	}
	if s.cfg.OnPeriodEnd != nil {
		if err := s.cfg.OnPeriodEnd(s); err != nil {
			return err
		}
		if s.wallet.Balance().IsNegative() {
			s.missed++
		}
	}
	if s.period >= s.cfg.Periods {
		s.finish()
		return nil
	}
	s.period++
	return s.openPeriod()
}

func (s *Session) finish() {
	s.step = StepSummary
	sum := &Summary{
		Kind:           s.cfg.Kind,
		StartBalance:   s.startBalance,
		FinalBalance:   s.wallet.Balance(),
		NetChange:      s.wallet.Balance().Sub(s.startBalance),
		MissedPayments: s.missed,
	}
	if s.cfg.Summarize != nil {
		s.cfg.Summarize(s, sum)
	}
	s.summary = sum
	s.state.CompleteSimulation(s.cfg.Kind)
}

// Done reports whether the session reached its summary.
func (s *Session) Done() bool { return s.step == StepSummary }

// Summary returns the terminal report, nil until Done.
func (s *Session) Summary() *Summary { return s.summary }
