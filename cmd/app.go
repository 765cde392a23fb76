// Package cmd implements the CLI application to play and inspect a learner
// account.
package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/finlit/finlit"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "wallet")
	c.Register(&logCmd{}, "wallet")

	c.Register(&loanCmd{}, "loans")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")

	c.Register(&taxCmd{}, "planning")

	c.Register(&simulateCmd{}, "learning")
	c.Register(&topicCmd{}, "learning")
	c.Register(&adviseCmd{}, "learning")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var stateDir = flag.String("state-dir", ".finlit", "Path to the folder holding learner state files")
var account = flag.String("account", "learner", "Name of the learner account")

// loadState is the central function to open the learner state. A missing or
// unreadable file yields a fresh default account.
func loadState() *finlit.State {
	return finlit.LoadState(*stateDir, *account)
}

// saveState writes the learner state back to the app state folder.
func saveState(s *finlit.State) subcommands.ExitStatus {
	if err := finlit.SaveState(*stateDir, *account, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

var stdin = bufio.NewReader(os.Stdin)

// ask prompts and reads one trimmed line from stdin.
func ask(prompt string) string {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// askYesNo prompts until it gets a y/n answer.
func askYesNo(prompt string) bool {
	for {
		switch strings.ToLower(ask(prompt + " [y/n] ")) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
