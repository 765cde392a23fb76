package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type logCmd struct {
	n int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the wallet transaction log, newest first" }
func (*logCmd) Usage() string {
	return `fin log [-n <count>]

  Shows the most recent wallet transactions with their balance snapshots.
  The wallet keeps a bounded history; older entries are gone for good.
`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.n, "n", 20, "Maximum number of transactions to show.")
}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := loadState()

	log := state.Wallet.Log()
	if p.n > 0 && len(log) > p.n {
		log = log[:p.n]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(log) == 0 {
		fmt.Fprintf(&b, "No transactions yet.\n")
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(&b, "| When | Amount | Reason | Balance |\n")
	fmt.Fprintf(&b, "|------|-------:|--------|--------:|\n")
	for _, tx := range log {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			tx.Time.Local().Format("2006-01-02 15:04"),
			tx.Signed().SignedString(), tx.Reason, tx.BalanceAfter)
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
