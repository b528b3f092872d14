package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/qepting91/job-feed/internal/collector"
	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/qepting91/job-feed/internal/feed"
	"github.com/qepting91/job-feed/internal/ingest"
	"github.com/qepting91/job-feed/internal/storage"
	"github.com/urfave/cli/v2"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Collect pages headlessly into an NDJSON snapshot",
		Description: `Loads page 1 and then the following pages the same way the
		screen does, writing every posting to the output file.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "pages",
				Value: 1,
				Usage: "Number of pages to collect",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "data/jobs.ndjson",
				Usage:   "Snapshot file",
				EnvVars: []string{"JOBFEED_SNAPSHOT"},
			},
			&cli.BoolFlag{
				Name:  "append",
				Usage: "Append to the snapshot instead of replacing it",
			},
			&cli.StringFlag{
				Name:  "keywords",
				Usage: "CSV of keywords (first column, header row); only matching postings are written",
			},
		},
		Action: func(cctx *cli.Context) error {
			pages := cctx.Int("pages")
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, os.Stderr)

			var keywords []string
			if path := cctx.String("keywords"); path != "" {
				if keywords, err = ingest.LoadKeywords(path); err != nil {
					return fmt.Errorf("load keywords: %w", err)
				}
			}

			source, err := collector.NewCollector(cfg, logger)
			if err != nil {
				return fmt.Errorf("initialize collector: %w", err)
			}

			ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			controller := feed.New(source, logger)
			defer controller.Close()

			results := make(chan domain.JobPosting, 100)
			writer := &storage.WriterService{FilePath: cctx.String("out"), Append: cctx.Bool("append"), Logger: logger}
			var writerWg sync.WaitGroup
			writerWg.Add(1)
			go writer.Start(&writerWg, results)

			emit := func(res feed.PageResult) {
				for _, p := range res.Items {
					if len(keywords) > 0 && len(ingest.MatchKeywords(p, keywords)) == 0 {
						continue
					}
					results <- p
				}
			}

			res, _ := controller.Mount(ctx)
			emit(res)
			for i := 1; i < pages && ctx.Err() == nil; i++ {
				res, ok := controller.TriggerLoadMore(ctx)
				if !ok {
					break
				}
				emit(res)
			}

			close(results)
			writerWg.Wait()
			if err := writer.Err(); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			state := controller.Snapshot()
			logger.Info("fetch complete", "pages", state.Page, "postings", len(state.Items), "written", writer.Written())
			return nil
		},
	}
}
