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

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	jsonOut bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the full FIFO transaction ledger" }
func (*ledgerCmd) Usage() string {
	return `eql ledger [-json]

  Computes the FIFO lot ledger from the records file and displays one row
  per processed event: holdings, cost of holdings, average cost and
  realized P&L after each buy, sell, bonus or split.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonOut, "json", false, "emit the ledger rows as JSON instead of a rendered table")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rs, err := DecodeRecordSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger := rs.Compute()

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		for _, row := range ledger.Rows() {
			if err := enc.Encode(row); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding row: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.LedgerMarkdown(ledger))

	return subcommands.ExitSuccess
}
