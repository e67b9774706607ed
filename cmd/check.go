package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/equitydesk/holdings"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "audit the records file for data-quality issues" }
func (*checkCmd) Usage() string {
	return `eql check

  Reports every record the engine would silently degrade on: malformed
  ISINs, unknown transaction codes, unparseable dates, zero quantities,
  missing prices and invalid split ratios. Exits with a failure status
  when any issue is found.
`
}

func (c *checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rs, err := DecodeRecordSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		return subcommands.ExitFailure
	}

	issues := holdings.Audit(rs)
	if len(issues) == 0 {
		fmt.Println("records are clean")
		return subcommands.ExitSuccess
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	return subcommands.ExitFailure
}
