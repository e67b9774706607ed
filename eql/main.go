package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/equitydesk/holdings/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion machinery.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"ledger": {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"card":   {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"check":  {},
			"topic":  {},
		},
		Flags: map[string]complete.Predictor{
			"records-file": predict.Files("*.jsonl"),
		},
	}
	completion.Complete("eql")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
