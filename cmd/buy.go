package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/finlit/finlit"
	"github.com/google/subcommands"
)

// quote returns the listed price of a symbol, or an error for unknown ones.
func quote(symbol string) (finlit.Money, error) {
	for _, s := range finlit.DefaultStocks() {
		if s.Symbol == symbol {
			return s.Price, nil
		}
	}
	return finlit.Money{}, fmt.Errorf("unknown symbol %q", symbol)
}

// parseUnits parses a whole, positive unit count.
func parseUnits(s string) (finlit.Quantity, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return finlit.Quantity{}, fmt.Errorf("units must be a positive whole number, got %q", s)
	}
	return finlit.Q(n), nil
}

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy stock units from the wallet" }
func (*buyCmd) Usage() string {
	return `fin buy <symbol> <units>

  Buys units at the listed price, debiting the wallet. The order is
  rejected when the wallet cannot afford it.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := state.Portfolio.Buy(symbol, units, price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error buying %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Bought %s %s at %s, paid %s, balance %s\n", units, symbol, price, tx.Amount, tx.BalanceAfter)
	return saveState(state)
}
