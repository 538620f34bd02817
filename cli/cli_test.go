package cli

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &versionCmd{out: &buf}
	status := cmd.Execute(context.Background(), flag.NewFlagSet("version", flag.ContinueOnError))
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "pocketledger dev\n", buf.String())
}

func TestServeFlags(t *testing.T) {
	cmd := &serveCmd{}
	f := flag.NewFlagSet("serve", flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse([]string{"-c", "cfg.yaml", "-p", "9000"}))
	assert.Equal(t, "cfg.yaml", cmd.configFile)
	assert.Equal(t, "9000", cmd.port)
}

func TestMailtestRequiresAddress(t *testing.T) {
	cmd := &mailtestCmd{}
	f := flag.NewFlagSet("mailtest", flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(nil))
	assert.Equal(t, subcommands.ExitUsageError, cmd.Execute(context.Background(), f))
}

func TestServeFailsWithoutSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGER_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	cmd := &serveCmd{}
	assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), flag.NewFlagSet("serve", flag.ContinueOnError)))
}

func TestRegister(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("pocketledger", flag.ContinueOnError), "pocketledger")
	Register(commander)

	var names []string
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		names = append(names, c.Name())
	})
	assert.Subset(t, names, []string{"serve", "migrate", "mailtest", "version", "help"})
}
