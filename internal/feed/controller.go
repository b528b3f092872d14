// Package feed holds the incremental page controller behind the job list.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/qepting91/job-feed/internal/normalize"
)

// ErrClosed marks a page result that arrived after Close and was dropped
var ErrClosed = errors.New("feed controller closed")

// State is a point-in-time copy of the feed
type State struct {
	Items []domain.JobPosting
	Page  int
	Phase Phase
}

func newState() State {
	return State{Items: []domain.JobPosting{}, Page: 1, Phase: IdleInitial}
}

// IsInitialLoading is true until the first response has been processed
func (s State) IsInitialLoading() bool {
	return s.Phase == IdleInitial || s.Phase == LoadingInitial
}

// IsFetchingMore is the in-flight latch for load-more requests
func (s State) IsFetchingMore() bool {
	return s.Phase == LoadingMore
}

// PageResult is the outcome of one page request. Err != nil means the page
// failed and the feed degraded to an empty page.
type PageResult struct {
	Page  int
	Items []domain.JobPosting
	Err   error
}

func (r PageResult) OK() bool {
	return r.Err == nil
}

// Controller owns one feed session: created on mount, closed on unmount
type Controller struct {
	source domain.Collector
	logger *slog.Logger

	base   context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  State
	closed bool
}

func New(source domain.Collector, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Controller{
		source: source,
		logger: logger,
		base:   base,
		cancel: cancel,
		state:  newState(),
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	return s
}

// BeginMount moves the feed into its initial load. It returns false if the
// feed was already mounted or is closed.
func (c *Controller) BeginMount() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	next, ok := c.state.Phase.Next(EventMount)
	if !ok {
		return false
	}
	c.state.Phase = next
	return true
}

// BeginLoadMore sets the latch and advances the page before any request is
// made. It returns the page to fetch, or false when the trigger is ignored.
func (c *Controller) BeginLoadMore() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, false
	}
	next, ok := c.state.Phase.Next(EventLoadMore)
	if !ok {
		loadMoreIgnored.Inc()
		c.logger.Debug("load more ignored", "phase", c.state.Phase.String(), "page", c.state.Page)
		return 0, false
	}
	c.state.Phase = next
	c.state.Page++
	return c.state.Page, true
}

// FetchPage requests one page and folds it into the feed: page 1 replaces
// the items, later pages append. A failed page leaves items untouched. The
// loading flags are cleared whatever the outcome.
func (c *Controller) FetchPage(ctx context.Context, page int) PageResult {
	ctx, stop := c.bind(ctx)
	defer stop()

	var res PageResult
	raws, err := c.source.FetchPage(ctx, page)
	if err != nil {
		res = PageResult{Page: page, Err: err}
	} else {
		res = PageResult{Page: page, Items: normalize.Postings(raws)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		pageFetches.WithLabelValues(outcomeDiscarded).Inc()
		return PageResult{Page: page, Err: ErrClosed}
	}

	switch {
	case res.OK() && page == 1:
		c.state.Items = res.Items
	case res.OK():
		c.state.Items = append(c.state.Items, res.Items...)
	default:
		c.logger.Warn("page fetch failed, showing no new postings", "page", page, "error", res.Err)
	}

	if res.OK() {
		pageFetches.WithLabelValues(outcomeOK).Inc()
		postingsReceived.Add(float64(len(res.Items)))
	} else {
		pageFetches.WithLabelValues(outcomeError).Inc()
	}

	c.state.Phase, _ = c.state.Phase.Next(EventResponse)
	return res
}

// Mount performs the initial page 1 load. The second return value is false
// when the feed was already mounted.
func (c *Controller) Mount(ctx context.Context) (PageResult, bool) {
	if !c.BeginMount() {
		return PageResult{}, false
	}
	return c.FetchPage(ctx, 1), true
}

// TriggerLoadMore fetches the next page unless a load is already running
func (c *Controller) TriggerLoadMore(ctx context.Context) (PageResult, bool) {
	page, ok := c.BeginLoadMore()
	if !ok {
		return PageResult{}, false
	}
	return c.FetchPage(ctx, page), true
}

// Close cancels in-flight requests. Responses arriving afterwards are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// bind ties ctx to the controller lifetime
func (c *Controller) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
