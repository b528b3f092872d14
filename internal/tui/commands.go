package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/qepting91/job-feed/internal/feed"
	"github.com/qepting91/job-feed/internal/linkopen"
)

const (
	statusTTL     = 3 * time.Second
	actionTimeout = 10 * time.Second
)

type pageLoadedMsg struct {
	result feed.PageResult
}

type bookmarkToggledMsg struct {
	id         int64
	bookmarked bool
	err        error
}

type bookmarksListedMsg struct {
	items []domain.JobPosting
	err   error
}

type bookmarkMarksMsg struct {
	marks map[int64]bool
}

type linkOpenedMsg struct {
	failNotice string
	err        error
}

type clearStatusMsg struct {
	id int
}

func fetchPageCmd(ctx context.Context, c *feed.Controller, page int) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg{result: c.FetchPage(ctx, page)}
	}
}

func toggleBookmarkCmd(ctx context.Context, store domain.BookmarkStore, posting domain.JobPosting) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()

		bookmarked, err := store.Toggle(ctx, posting)
		return bookmarkToggledMsg{id: posting.ID, bookmarked: bookmarked, err: err}
	}
}

func listBookmarksCmd(ctx context.Context, store domain.BookmarkStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()

		items, err := store.List(ctx)
		return bookmarksListedMsg{items: items, err: err}
	}
}

func bookmarkMarksCmd(ctx context.Context, store domain.BookmarkStore, postings []domain.JobPosting) tea.Cmd {
	if len(postings) == 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()

		marks := make(map[int64]bool, len(postings))
		for _, p := range postings {
			marks[p.ID] = store.IsBookmarked(ctx, p.ID)
		}
		return bookmarkMarksMsg{marks: marks}
	}
}

func openLinkCmd(ctx context.Context, opener domain.LinkOpener, uri, failNotice string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()

		return linkOpenedMsg{failNotice: failNotice, err: opener.Open(ctx, uri)}
	}
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func linkNotice(msg linkOpenedMsg) string {
	if errors.Is(msg.err, linkopen.ErrCopied) {
		return msg.failNotice + ", link copied to clipboard"
	}
	return msg.failNotice
}
