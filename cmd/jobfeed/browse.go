package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qepting91/job-feed/internal/bookmark"
	"github.com/qepting91/job-feed/internal/collector"
	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/feed"
	"github.com/qepting91/job-feed/internal/linkopen"
	"github.com/qepting91/job-feed/internal/tui"
	"github.com/urfave/cli/v2"
)

func browseCmd() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse postings interactively",
		Action: func(cctx *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logFile, err := openLogFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer logFile.Close()
			logger := newLogger(cfg, logFile)

			ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			source, err := collector.NewCollector(cfg, logger)
			if err != nil {
				return fmt.Errorf("initialize collector: %w", err)
			}
			store, err := bookmark.Open(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("open bookmarks: %w", err)
			}
			defer store.Close()

			controller := feed.New(source, logger)
			defer controller.Close()

			logger.Info("browse started", "mode", cfg.CollectorMode, "bookmarks", cfg.BookmarkBackend)
			model := tui.NewModel(ctx, controller, store, linkopen.New(), cfg.LoadThreshold, logger)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("run screen: %w", err)
			}
			return nil
		},
	}
}
