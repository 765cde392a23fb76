package cmd

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/finlit/finlit"
	"github.com/finlit/finlit/sim"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	item   string
	months int
	income int
	regime string
	seed   int64

	rent      int
	food      int
	transport int
	savings   int
	fun       int
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "play an interactive financial simulation" }
func (*simulateCmd) Usage() string {
	return `fin simulate loan [-item bike|phone|laptop] [-months 6|12|24]
fin simulate budget [-rent N -food N -transport N -savings N -fun N]
fin simulate money-month
fin simulate stock
fin simulate tax [-income <rupees>] [-regime old|new]

  Runs one of the simulations against the learner account. The loan and
  budget runs play on the learner wallet; money-month and stock hand out
  their own pocket money so a bad run cannot wreck the main wallet.
`
}

func (p *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.item, "item", "bike", "Item to buy on EMI in the loan walkthrough.")
	f.IntVar(&p.months, "months", 12, "Loan tenure in months (6, 12 or 24).")
	f.IntVar(&p.income, "income", 800_000, "Gross annual income for the tax year.")
	f.StringVar(&p.regime, "regime", "old", "Tax regime to lock in for the year (old, new).")
	f.Int64Var(&p.seed, "seed", 0, "Random seed; 0 uses the clock.")

	alloc := sim.DefaultAllocation()
	f.IntVar(&p.rent, "rent", rupeeInt(alloc.Rent), "Monthly rent allocation.")
	f.IntVar(&p.food, "food", rupeeInt(alloc.Food), "Monthly food allocation.")
	f.IntVar(&p.transport, "transport", rupeeInt(alloc.Transport), "Monthly transport allocation.")
	f.IntVar(&p.savings, "savings", rupeeInt(alloc.Savings), "Monthly savings allocation.")
	f.IntVar(&p.fun, "fun", rupeeInt(alloc.Fun), "Monthly fun allocation.")
}

func rupeeInt(m finlit.Money) int { return int(m.Round().IntPart()) }

func (p *simulateCmd) rng() *rand.Rand {
	seed := p.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (p *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := loadState()

	var summary *sim.Summary
	var err error
	switch f.Arg(0) {
	case "loan":
		summary, err = p.runLoan(state)
	case "budget":
		summary, err = p.runBudget(state)
	case "money-month":
		summary, err = p.runMoneyMonth(state)
	case "stock":
		summary, err = p.runStock(state)
	case "tax":
		summary, err = p.runTax(state)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", f.Arg(0))
		fmt.Fprintln(os.Stderr, p.Usage())
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printSummary(summary)
	printLearningSummary(ctx, summary)
	return saveState(state)
}

// runSession drives a generic session interactively: it resolves drawn
// events from stdin and paces the display between periods.
func runSession(s *sim.Session) (*sim.Summary, error) {
	if err := s.Start(); err != nil {
		return nil, err
	}
	for !s.Done() {
		fmt.Printf("\n— Month %d/%d — balance %s\n", s.Period(), s.Periods(), s.Wallet().Balance())
		if ev := s.Pending(); ev != nil {
			pay := askYesNo(fmt.Sprintf("%s (%s). Pay?", ev.Text, ev.Cost))
			if err := s.Resolve(pay); err != nil {
				return nil, err
			}
		}
		if err := s.Advance(); err != nil {
			return nil, err
		}
		time.Sleep(s.Pacing())
	}
	return s.Summary(), nil
}

// checkTenure restricts the loan walkthrough to the offered repayment
// horizons.
func checkTenure(months int) error {
	if slices.Contains(sim.LoanTenures, months) {
		return nil
	}
	return fmt.Errorf("tenure must be one of %v months, got %d", sim.LoanTenures, months)
}

func (p *simulateCmd) runLoan(state *finlit.State) (*sim.Summary, error) {
	item, err := sim.LoanItem(p.item)
	if err != nil {
		return nil, err
	}
	if err := checkTenure(p.months); err != nil {
		return nil, err
	}
	fmt.Printf("Buying a %s for %s on a %d-month EMI, salary %s a month.\n",
		item.Name, item.Price, p.months, sim.LoanSalary)
	return runSession(sim.NewLoanWalkthrough(state, p.rng(), item, p.months))
}

func (p *simulateCmd) runBudget(state *finlit.State) (*sim.Summary, error) {
	alloc := sim.Allocation{
		Rent:      finlit.Rupees(p.rent),
		Food:      finlit.Rupees(p.food),
		Transport: finlit.Rupees(p.transport),
		Savings:   finlit.Rupees(p.savings),
		Fun:       finlit.Rupees(p.fun),
	}
	s, err := sim.NewBudgetChallenge(state, p.rng(), alloc)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Three months on a %s salary. Savings target: %s a month.\n", sim.BudgetSalary, alloc.Savings)
	return runSession(s)
}

func (p *simulateCmd) runMoneyMonth(state *finlit.State) (*sim.Summary, error) {
	m := sim.NewMoneyMonth(state)
	fmt.Printf("One month, %s of pocket money. Choose how to pay for each expense.\n", sim.MoneyMonthPocket)

	for e := m.Current(); e != nil; e = m.Current() {
		fmt.Printf("\n#%d %s — %s (cash %s", e.ID, e.Text, e.Cost, m.Wallet().Balance())
		if !m.CreditBill().IsZero() {
			fmt.Printf(", credit bill %s", m.CreditBill())
		}
		fmt.Println(")")
		choices := "cash, upi, credit"
		if e.EMIEligible {
			choices += fmt.Sprintf(", emi (%s x 3)", sim.AdHocEMI(e.Cost))
		}
		method, err := sim.ParsePayMethod(ask("Pay with (" + choices + ")? "))
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := m.Pay(method); err != nil {
			fmt.Println(err)
		}
	}
	return m.Settle()
}

func (p *simulateCmd) runStock(state *finlit.State) (*sim.Summary, error) {
	g, err := sim.NewStockGame(state, p.rng())
	if err != nil {
		return nil, err
	}
	fmt.Printf("30 trading days, %s of seed money. Commands: buy <sym> <n>, sell <sym> <n>, next, done.\n",
		sim.StockSeedMoney)

	for !g.Done() {
		fmt.Printf("\n— Day %d — cash %s\n", g.Day(), g.Cash())
		held := make(map[string]finlit.Quantity)
		for _, h := range g.Holdings() {
			held[h.Symbol] = h.Units
		}
		for _, s := range g.Market().Stocks() {
			fmt.Printf("  %-10s %-18s %s", s.Symbol, s.Name, g.Market().Price(s.Symbol))
			if units, ok := held[s.Symbol]; ok {
				fmt.Printf("  (held: %s)", units)
			}
			fmt.Println()
		}

		fields := strings.Fields(ask("> "))
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "next":
			if err := g.NextDay(); err != nil {
				return nil, err
			}
		case fields[0] == "done":
			for !g.Done() {
				if err := g.NextDay(); err != nil {
					return nil, err
				}
			}
		case (fields[0] == "buy" || fields[0] == "sell") && len(fields) == 3:
			units, err := parseUnits(fields[2])
			if err != nil {
				fmt.Println(err)
				continue
			}
			symbol := strings.ToUpper(fields[1])
			if fields[0] == "buy" {
				err = g.Buy(symbol, units)
			} else {
				err = g.Sell(symbol, units)
			}
			if err != nil {
				fmt.Println(err)
			}
		default:
			fmt.Println("commands: buy <sym> <n>, sell <sym> <n>, next, done")
		}
	}
	return g.Summary(), nil
}

func (p *simulateCmd) runTax(state *finlit.State) (*sim.Summary, error) {
	regime, err := finlit.ParseRegime(p.regime)
	if err != nil {
		return nil, err
	}
	planner := sim.NewTaxPlanner(state, regime, finlit.Rupees(p.income))
	fmt.Printf("A tax year on %s, locked into the %s regime.\n", planner.Breakdown().Gross, regime)

	for d := planner.Current(); d != nil; d = planner.Current() {
		fmt.Printf("\n%s: %s\n", d.Month, d.Text)
		yes := askYesNo(fmt.Sprintf("Invest %s in %s (section %s)?", d.Amount, d.Instrument, d.Section))
		if err := planner.Invest(yes); err != nil {
			return nil, err
		}
	}
	return planner.Finish()
}

// printSummary renders the end-of-run report card.
func printSummary(sum *sim.Summary) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Grade %s\n\n", sum.Grade)
	fmt.Fprintf(&b, "* Started with %s, ended with %s (%s)\n",
		sum.StartBalance, sum.FinalBalance, sum.NetChange.SignedString())
	if sum.MissedPayments > 0 {
		fmt.Fprintf(&b, "* Missed payments: %d\n", sum.MissedPayments)
	}
	for _, r := range sum.Remarks {
		fmt.Fprintf(&b, "* %s\n", r)
	}
	printMarkdown(b.String())
}

// printLearningSummary asks the advisor what the run taught. Advice is
// best effort; a failed provider falls back to canned text.
func printLearningSummary(ctx context.Context, sum *sim.Summary) {
	ls, err := provider(ctx).LearningSummary(ctx, *sum)
	if err != nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## What you learned\n\n")
	for _, l := range ls.Learned {
		fmt.Fprintf(&b, "* %s\n", l)
	}
	if ls.NextLesson != "" {
		fmt.Fprintf(&b, "\nNext up: %s. %s\n", ls.NextLesson, ls.Encouragement)
	}
	printMarkdown(b.String())
}
