package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/events"
	"pocketledger/middleware"
	"pocketledger/router"
	"pocketledger/service"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	configFile string
	port       string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API" }
func (*serveCmd) Usage() string {
	return `serve [-c config.yaml] [-p port]

Migrates the database, then serves the API until SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	configFlag(f, &c.configFile)
	f.StringVar(&c.port, "port", "", "listen port, e.g. 8080 or :8080")
	f.StringVar(&c.port, "p", "", "listen port (shorthand)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) run(ctx context.Context) error {
	cfg, log, err := setup(c.configFile)
	if err != nil {
		return err
	}
	if c.port != "" {
		cfg.Server.Port = config.NormalizePort(c.port)
	}
	config.PrintConfig(cfg)

	db, err := database.Init(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	analyzer, err := service.NewAnalyzer(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("init analyzer: %w", err)
	}
	if analyzer == nil {
		log.Warn("no AI api key configured, analysis is disabled")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		p, err := events.DialAMQP(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			return err
		}
		publisher = p
		log.Info("publishing transaction events", "exchange", cfg.Events.Exchange)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", "error", err)
		}
	}()

	var mailer service.WelcomeMailer
	if email := service.NewEmailService(&cfg.Email); email.Enabled() {
		mailer = email
	}

	validator, err := service.NewTransactionValidator()
	if err != nil {
		return err
	}
	jwt := middleware.NewJWT(cfg.JWT)
	ledgers := service.NewLedgerService(db)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	users := service.NewUserService(db, jwt, mailer, log)
	engine := router.SetupRouter(ctx, router.Deps{
		Config:       cfg,
		Logger:       log,
		JWT:          jwt,
		Users:        users,
		Ledgers:      ledgers,
		Transactions: service.NewTransactionService(db, ledgers, validator, publisher, log),
		Analysis:     service.NewAnalysisService(db, ledgers, analyzer, cfg.AI.Timeout, log),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", "addr", cfg.Server.Port, "swagger", "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := users.WaitMail(shutdownCtx); err != nil {
			log.Warn("pending welcome emails dropped", "error", err)
		}
		return nil
	})

	return g.Wait()
}
