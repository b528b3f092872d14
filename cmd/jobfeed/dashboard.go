package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/dashboard"
	"github.com/urfave/cli/v2"
)

func dashboardCmd() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Serve charts over a snapshot plus /metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Value:   "data/jobs.ndjson",
				Usage:   "Snapshot written by fetch",
				EnvVars: []string{"JOBFEED_SNAPSHOT"},
			},
		},
		Action: func(cctx *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, os.Stdout)

			ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting Dashboard", "port", cfg.Port, "data", cctx.String("data"))
			return dashboard.StartServer(ctx, cctx.String("data"), cfg.Port, logger)
		},
	}
}
