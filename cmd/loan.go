package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finlit/finlit"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// loanLine is the one-line loan description used by the balance overview.
func loanLine(ln finlit.Loan) string {
	return fmt.Sprintf("%s: %d of %d instalments remaining, EMI %s", ln.Reason, ln.Remaining, ln.Months, ln.EMI)
}

// loanRow is one markdown table row of `fin loan list`.
func loanRow(ln finlit.Loan) string {
	return fmt.Sprintf("| %s | %s | %s | %s%% | %s | %d | %d |",
		ln.ID, ln.Reason, ln.Principal, ln.Rate, ln.EMI, ln.Remaining, ln.Missed)
}

type loanCmd struct {
	amount int
	rate   string
	months int
	reason string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "take, pay or list loans" }
func (*loanCmd) Usage() string {
	return `fin loan list
fin loan take -amount <rupees> [-rate <percent>] [-months <n>] [-reason <text>]
fin loan pay [<loan-id>]

  'take' disburses a new loan into the wallet and schedules its EMI.
  'pay' debits one EMI for the given loan, or for every active loan when
  no id is given. A payment that overdraws the wallet still goes through
  and is counted as missed.
`
}

func (p *loanCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.amount, "amount", 0, "Principal to borrow, in whole rupees.")
	f.StringVar(&p.rate, "rate", "12", "Annual interest rate, in percent.")
	f.IntVar(&p.months, "months", 12, "Tenure in months.")
	f.StringVar(&p.reason, "reason", "personal loan", "What the loan is for.")
}

func (p *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := loadState()

	switch f.Arg(0) {
	case "", "list":
		var b strings.Builder
		fmt.Fprintf(&b, "# Active loans\n\n")
		loans := state.Loans.Active()
		if len(loans) == 0 {
			fmt.Fprintf(&b, "No active loans.\n")
			printMarkdown(b.String())
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(&b, "| ID | Reason | Principal | Rate | EMI | Remaining | Missed |\n")
		fmt.Fprintf(&b, "|----|--------|----------:|-----:|----:|----------:|-------:|\n")
		for _, ln := range loans {
			fmt.Fprintf(&b, "%s\n", loanRow(ln))
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess

	case "take":
		if p.amount <= 0 {
			fmt.Fprintln(os.Stderr, "Error: -amount must be positive")
			return subcommands.ExitUsageError
		}
		rate, err := decimal.NewFromString(p.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing rate: %v\n", err)
			return subcommands.ExitUsageError
		}
		loan, err := state.Loans.Take(finlit.Rupees(p.amount), rate, p.months, p.reason)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error taking loan: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Loan %s disbursed: %s at %s%% for %d months, EMI %s, total interest %s\n",
			loan.ID, loan.Principal, loan.Rate, loan.Months, loan.EMI, loan.TotalInterest())
		return saveState(state)

	case "pay":
		if id := f.Arg(1); id != "" {
			paid, missed, closed, err := state.Loans.AdvancePeriod(id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error paying loan: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("Paid %s, balance %s\n", paid.Amount, paid.BalanceAfter)
			if missed {
				fmt.Println("The wallet went negative: this EMI counts as missed.")
			}
			if closed {
				fmt.Println("Loan fully repaid. 🎉")
			}
		} else {
			missed, err := state.Loans.AdvanceAll()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error paying loans: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("All EMIs paid, balance %s, %d missed\n", state.Wallet.Balance(), missed)
		}
		return saveState(state)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown verb %q, want list, take or pay\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}
