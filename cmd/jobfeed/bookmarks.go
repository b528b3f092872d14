package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/qepting91/job-feed/internal/bookmark"
	"github.com/qepting91/job-feed/internal/config"
	"github.com/urfave/cli/v2"
)

func bookmarksCmd() *cli.Command {
	return &cli.Command{
		Name:  "bookmarks",
		Usage: "List saved postings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print postings as NDJSON",
			},
		},
		Action: func(cctx *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, os.Stderr)

			store, err := bookmark.Open(cctx.Context, cfg, logger)
			if err != nil {
				return fmt.Errorf("open bookmarks: %w", err)
			}
			defer store.Close()

			saved, err := store.List(cctx.Context)
			if err != nil {
				return err
			}

			if cctx.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				for _, p := range saved {
					if err := enc.Encode(p); err != nil {
						return err
					}
				}
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tPLACE\tSALARY")
			for _, p := range saved {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title.Display(), p.CompanyName.Display(), p.Place.Display(), p.Salary.Display())
			}
			return tw.Flush()
		},
	}
}
