package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeDiscarded = "discarded"
)

var (
	pageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobfeed_page_fetches_total",
		Help: "Page fetches by outcome",
	}, []string{"outcome"})

	postingsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobfeed_postings_received_total",
		Help: "Postings accepted into a feed",
	})

	loadMoreIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobfeed_load_more_ignored_total",
		Help: "Load-more triggers dropped because the feed was not ready",
	})
)
