package main

import (
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "jobfeed",
		Usage: "Browse and collect postings from a paginated jobs API",
		Description: `Browse job postings page by page in the terminal, bookmark the
		ones worth a call and contact recruiters over WhatsApp.

		Configuration is read from the environment (and .env), e.g.:

		JOBFEED_API_URL, COLLECTOR_MODE=http|mock, BOOKMARK_BACKEND=memory|sqlite|redis
		`,
		Commands: []*cli.Command{
			browseCmd(),
			fetchCmd(),
			bookmarksCmd(),
			dashboardCmd(),
		},
		DefaultCommand: "browse",
	}
}
