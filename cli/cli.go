// Package cli holds the pocketledger subcommands.
package cli

import (
	"flag"
	"fmt"

	"pocketledger/config"
	"pocketledger/logger"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Version is overridden at build time with -ldflags "-X pocketledger/cli.Version=...".
var Version = "dev"

// Commands lists every subcommand with its group.
var Commands = []struct {
	Cmd   subcommands.Command
	Group string
}{
	{&serveCmd{}, "server"},
	{&migrateCmd{}, "server"},
	{&mailtestCmd{}, "tools"},
	{&versionCmd{}, "tools"},
}

// Register adds the built-in help commands and Commands to commander.
func Register(commander *subcommands.Commander) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range Commands {
		commander.Register(c.Cmd, c.Group)
	}
}

// configFlag binds -c/-config to dst.
func configFlag(f *flag.FlagSet, dst *string) {
	f.StringVar(dst, "config", "", "external config file (optional)")
	f.StringVar(dst, "c", "", "external config file (shorthand)")
}

// setup loads .env, the configuration and the process logger.
func setup(configFile string) (*config.Config, *logger.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "pocketledger",
	})
	logger.SetDefault(log)
	return cfg, log, nil
}
