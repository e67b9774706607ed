package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/equitydesk/holdings/renderer"
	"github.com/google/subcommands"
)

// cardCmd holds the flags for the 'card' subcommand.
type cardCmd struct {
	jsonOut bool
}

func (*cardCmd) Name() string     { return "card" }
func (*cardCmd) Synopsis() string { return "display the current holdings card" }
func (*cardCmd) Usage() string {
	return `eql card [-json]

  Computes the FIFO lot ledger from the records file and displays only the
  resulting position: holdings, holding value and average cost.
`
}

func (c *cardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonOut, "json", false, "emit the card as JSON instead of a rendered table")
}

func (c *cardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rs, err := DecodeRecordSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		return subcommands.ExitFailure
	}

	card := rs.Compute().Summary()

	if c.jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(card); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding card: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.CardMarkdown(card))

	return subcommands.ExitSuccess
}
