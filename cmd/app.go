// Package cmd implements the CLI application to inspect equity holdings.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/equitydesk/holdings"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&ledgerCmd{}, "reports")
	c.Register(&cardCmd{}, "reports")
	c.Register(&checkCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var recordsFile = flag.String("records-file", "records.jsonl", "Path to the records file containing transactions, bonuses and splits (JSONL format)")

// DecodeRecordSet reads the app records file into a record set.
func DecodeRecordSet() (*holdings.RecordSet, error) {
	f, err := os.Open(*recordsFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open records file %q: %w", *recordsFile, err)
	}
	defer f.Close()
	return holdings.DecodeRecords(f)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot initialize (e.g. dumb terminals).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
