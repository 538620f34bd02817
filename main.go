package main

import (
	"context"
	"flag"
	"os"
	"path"

	"pocketledger/cli"

	"github.com/google/subcommands"
)

// @title PocketLedger API
// @version 1.0
// @description Personal finance API: users, ledgers, transactions, summaries, exports and AI analysis.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
