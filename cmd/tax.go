package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finlit/finlit"
	"github.com/google/subcommands"
)

type taxCmd struct {
	income     int
	deductions int
	regime     string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "compute income tax under both regimes" }
func (*taxCmd) Usage() string {
	return `fin tax -income <rupees> [-deductions <rupees>] [-regime old|new]

  Computes the tax position for a gross annual income. Without -regime it
  shows both regimes side by side; deductions only count under the old one.
`
}

func (p *taxCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.income, "income", 0, "Gross annual income, in whole rupees.")
	f.IntVar(&p.deductions, "deductions", 0, "Total 80C/80D/80CCD deductions, in whole rupees.")
	f.StringVar(&p.regime, "regime", "", "Tax regime (old, new). Empty compares both.")
}

func (p *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.income <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -income must be positive")
		return subcommands.ExitUsageError
	}

	gross := finlit.Rupees(p.income)
	deductions := finlit.Rupees(p.deductions)

	regimes := []finlit.Regime{finlit.NewRegime, finlit.OldRegime}
	if p.regime != "" {
		r, err := finlit.ParseRegime(p.regime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		regimes = []finlit.Regime{r}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Tax on %s\n\n", gross)
	fmt.Fprintf(&b, "| Regime | Deductions | Taxable | Tax | Effective | Net | Monthly surplus |\n")
	fmt.Fprintf(&b, "|--------|-----------:|--------:|----:|----------:|----:|----------------:|\n")
	for _, r := range regimes {
		bd := finlit.NewTaxBreakdown(gross, deductions, r)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s%% | %s | %s |\n",
			bd.Regime, bd.Deductions, bd.Taxable, bd.Tax, bd.EffectiveRate, bd.Net, bd.MonthlySurplus())
	}
	if len(regimes) == 2 {
		a := finlit.NewTaxBreakdown(gross, deductions, regimes[0])
		o := finlit.NewTaxBreakdown(gross, deductions, regimes[1])
		switch {
		case a.Tax.LessThan(o.Tax):
			fmt.Fprintf(&b, "\nThe new regime saves %s.\n", o.Tax.Sub(a.Tax))
		case o.Tax.LessThan(a.Tax):
			fmt.Fprintf(&b, "\nThe old regime saves %s.\n", a.Tax.Sub(o.Tax))
		default:
			fmt.Fprintf(&b, "\nBoth regimes cost the same.\n")
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
