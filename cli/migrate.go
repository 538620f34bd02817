package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pocketledger/database"

	"github.com/google/subcommands"
)

type migrateCmd struct {
	configFile string
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "bring the database schema up to date" }
func (*migrateCmd) Usage() string {
	return `migrate [-c config.yaml]

Creates missing tables and moves ledger-less transactions into each owner's "General" ledger.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	configFlag(f, &c.configFile)
}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return subcommands.ExitFailure
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Error("open database", "error", err)
		return subcommands.ExitFailure
	}
	defer database.Close(db)

	if err := database.Migrate(db, log); err != nil {
		log.Error("migrate", "error", err)
		return subcommands.ExitFailure
	}
	log.Info("migration complete")
	return subcommands.ExitSuccess
}
