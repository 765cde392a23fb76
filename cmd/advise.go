package cmd

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/finlit/finlit"
	"github.com/finlit/finlit/advisor"
	"github.com/google/subcommands"
)

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "get financial tips from the advisor" }
func (*adviseCmd) Usage() string {
	return `fin advise
fin advise explain <term>
fin advise next

  Asks the advisor for tips on the current account, an explanation of a
  financial term, or the next topic worth studying. Uses Gemini when an
  API key is configured, canned advice otherwise.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {}

// provider builds the advice chain: Gemini with a static fallback when a
// client can be built, plain static advice otherwise.
func provider(ctx context.Context) advisor.Provider {
	g, err := advisor.NewGemini(ctx)
	if err != nil {
		return advisor.Static{}
	}
	return advisor.WithFallback(g)
}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := loadState()
	market := finlit.NewMarket(rand.New(rand.NewSource(time.Now().UnixNano())), finlit.DefaultStocks()...)
	snap := finlit.NewSnapshot(state, market)
	p := provider(ctx)

	switch f.Arg(0) {
	case "":
		tips, err := p.Tips(ctx, snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting tips: %v\n", err)
			return subcommands.ExitFailure
		}
		var b strings.Builder
		fmt.Fprintf(&b, "# Advisor tips\n\n")
		for _, tip := range tips {
			fmt.Fprintf(&b, "* %s\n", tip)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess

	case "explain":
		term := strings.Join(f.Args()[1:], " ")
		if term == "" {
			fmt.Fprintln(os.Stderr, "Error: missing term to explain")
			return subcommands.ExitUsageError
		}
		text, err := p.ExplainTerm(ctx, term)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error explaining %q: %v\n", term, err)
			return subcommands.ExitFailure
		}
		printMarkdown(text)
		return subcommands.ExitSuccess

	case "next":
		topic, err := p.NextTopic(ctx, snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting next topic: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(topic)
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown verb %q, want explain or next\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}
