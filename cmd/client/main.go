package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/wealthwise/internal/buildinfo"
	"github.com/dmitrijs2005/wealthwise/internal/client/cli"
	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/config"
	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/filex"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wealthwise: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataFile, err := filex.EnsureParentDir(cfg.DataFile)
	if err != nil {
		return err
	}
	db, err := client.InitDatabase(ctx, dataFile)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	store := session.NewStore()
	remote, err := client.NewHTTPClient(cfg.BaseURL, cfg.Timeout, store, client.WithLogger(log.With("component", "http")))
	if err != nil {
		return err
	}

	opts := []client.GatewayOption{
		client.WithRecorder(client.NewMemoryRecorder(0)),
		client.WithGatewayLogger(log.With("component", "gateway")),
	}
	if cfg.SimulatedAuth {
		sim, err := client.NewSimulated()
		if err != nil {
			return err
		}
		opts = append(opts, client.WithSimulatedAuth(sim))
		log.Info(ctx, "authentication is simulated, the backend is not consulted for login")
	}
	gw := client.NewGateway(remote, opts...)

	var sink export.Sink = export.NewFileSink(cfg.ExportDir)
	if cfg.S3.Enabled() {
		s3sink, err := export.NewS3Sink(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("configure s3 export: %w", err)
		}
		sink = s3sink
	}

	app := cli.NewApp(
		cfg,
		services.NewAuthService(gw, store, db, log),
		services.NewPortfolioService(gw),
		services.NewNetWorthService(gw, db, log),
		sink,
		log,
	)
	app.Run(ctx)
	return nil
}
