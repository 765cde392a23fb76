package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the wallet balance and account overview" }
func (*balanceCmd) Usage() string {
	return `fin balance

  Shows the wallet balance, level, streak and the positions the learner
  currently holds.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := loadState()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", state.User.Name)
	fmt.Fprintf(&b, "* Balance: %s\n", state.Wallet.Balance())
	fmt.Fprintf(&b, "* Level %d (%d XP), streak %d, %d/%d hearts, %d gems\n",
		state.User.Level, state.User.XP, state.User.Streak,
		state.User.Hearts, state.User.MaxHearts, state.User.Gems)

	if loans := state.Loans.Active(); len(loans) > 0 {
		fmt.Fprintf(&b, "\n## Loans\n\n")
		for _, ln := range loans {
			fmt.Fprintf(&b, "* %s\n", loanLine(ln))
		}
	}
	if holdings := state.Portfolio.Holdings(); len(holdings) > 0 {
		fmt.Fprintf(&b, "\n## Holdings\n\n")
		for _, h := range holdings {
			fmt.Fprintf(&b, "* %s: %s units\n", h.Symbol, h.Units)
		}
	}
	if len(state.Progress.CompletedLessons) > 0 {
		fmt.Fprintf(&b, "\n%d lessons completed.\n", len(state.Progress.CompletedLessons))
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
