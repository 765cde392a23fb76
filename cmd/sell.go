package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell stock units back into the wallet" }
func (*sellCmd) Usage() string {
	return `fin sell <symbol> <units>

  Sells held units at the listed price, crediting the wallet. The order
  is rejected when the position is smaller than the asked units.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	units, err := parseUnits(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := quote(symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	state := loadState()
	tx, err := state.Portfolio.Sell(symbol, units, price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selling %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Sold %s %s at %s, received %s, balance %s\n", units, symbol, price, tx.Amount, tx.BalanceAfter)
	return saveState(state)
}
