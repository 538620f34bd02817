package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pocketledger/service"

	"github.com/google/subcommands"
)

type mailtestCmd struct {
	configFile string
}

func (*mailtestCmd) Name() string     { return "mailtest" }
func (*mailtestCmd) Synopsis() string { return "send a test email with the configured SMTP settings" }
func (*mailtestCmd) Usage() string {
	return `mailtest [-c config.yaml] <address>
`
}

func (c *mailtestCmd) SetFlags(f *flag.FlagSet) {
	configFlag(f, &c.configFile)
}

func (c *mailtestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	cfg, log, err := setup(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mailtest: %v\n", err)
		return subcommands.ExitFailure
	}

	to := f.Arg(0)
	if err := service.NewEmailService(&cfg.Email).SendTestEmail(to); err != nil {
		log.Error("send test email", "to", to, "error", err)
		return subcommands.ExitFailure
	}
	log.Info("test email sent", "to", to)
	return subcommands.ExitSuccess
}
