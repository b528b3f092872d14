// Package tui is the interactive job list: cards, bookmarks and contact actions.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/qepting91/job-feed/internal/feed"
	"github.com/qepting91/job-feed/internal/linkopen"
)

const (
	noticeWhatsApp      = "Could not open WhatsApp"
	noticeWhatsAppGroup = "Could not open WhatsApp group"
)

type viewMode int

const (
	viewFeed viewMode = iota
	viewBookmarks
)

// Model is the bubbletea screen around one feed session
type Model struct {
	ctx       context.Context
	feed      *feed.Controller
	bookmarks domain.BookmarkStore
	opener    domain.LinkOpener
	logger    *slog.Logger
	threshold int

	state  feed.State
	cursor int
	marks  map[int64]bool

	mode        viewMode
	saved       []domain.JobPosting
	savedCursor int

	spinner  spinner.Model
	status   string
	statusID int

	width  int
	height int
}

func NewModel(ctx context.Context, c *feed.Controller, bookmarks domain.BookmarkStore, opener domain.LinkOpener, threshold int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold < 1 {
		threshold = 1
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:       ctx,
		feed:      c,
		bookmarks: bookmarks,
		opener:    opener,
		logger:    logger,
		threshold: threshold,
		state:     c.Snapshot(),
		marks:     make(map[int64]bool),
		spinner:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.feed.BeginMount() {
		return nil
	}
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.ctx, m.feed, 1))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if errors.Is(msg.result.Err, feed.ErrClosed) {
			return m, nil
		}
		m.state = m.feed.Snapshot()
		m.clampCursor()
		if !msg.result.OK() {
			if msg.result.Page == 1 {
				return m.notify("Could not load jobs")
			}
			return m.notify("Could not load more jobs")
		}
		return m, bookmarkMarksCmd(m.ctx, m.bookmarks, msg.result.Items)

	case bookmarkMarksMsg:
		for id, marked := range msg.marks {
			m.marks[id] = marked
		}
		return m, nil

	case bookmarkToggledMsg:
		if msg.err != nil {
			m.logger.Warn("bookmark toggle failed", "id", msg.id, "error", msg.err)
			return m.notify("Could not update bookmark")
		}
		m.marks[msg.id] = msg.bookmarked
		if m.mode == viewBookmarks {
			return m, listBookmarksCmd(m.ctx, m.bookmarks)
		}
		if msg.bookmarked {
			return m.notify("Bookmarked")
		}
		return m.notify("Bookmark removed")

	case bookmarksListedMsg:
		if msg.err != nil {
			m.logger.Warn("bookmark list failed", "error", msg.err)
			return m.notify("Could not load bookmarks")
		}
		m.saved = msg.items
		for _, p := range msg.items {
			m.marks[p.ID] = true
		}
		if m.savedCursor >= len(m.saved) {
			m.savedCursor = max(0, len(m.saved)-1)
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err == nil {
			return m, nil
		}
		m.logger.Warn("link open failed", "error", msg.err)
		return m.notify(linkNotice(msg))

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.feed.Close()
		return m, tea.Quit
	case "tab":
		if m.mode == viewFeed {
			m.mode = viewBookmarks
			return m, listBookmarksCmd(m.ctx, m.bookmarks)
		}
		m.mode = viewFeed
		return m, nil
	case "j", "down":
		return m.move(1)
	case "k", "up":
		return m.move(-1)
	case "g", "home":
		return m.move(-m.currentIndex())
	case "n":
		if m.mode == viewFeed {
			return m.loadMore()
		}
		return m, nil
	case "b":
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, toggleBookmarkCmd(m.ctx, m.bookmarks, p)
	case "w":
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		uri, err := linkopen.WhatsAppURI(string(p.WhatsAppNo))
		if err != nil {
			return m.notify("No WhatsApp number for this job")
		}
		return m, openLinkCmd(m.ctx, m.opener, uri, noticeWhatsApp)
	case "l":
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		if p.WhatsAppLink == "" {
			return m.notify("No WhatsApp group for this job")
		}
		return m, openLinkCmd(m.ctx, m.opener, string(p.WhatsAppLink), noticeWhatsAppGroup)
	}
	return m, nil
}

func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	if m.mode == viewBookmarks {
		m.savedCursor = clamp(m.savedCursor+delta, 0, len(m.saved)-1)
		return m, nil
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.state.Items)-1)
	if delta > 0 && len(m.state.Items)-1-m.cursor < m.threshold {
		return m.loadMore()
	}
	return m, nil
}

// loadMore flips the latch on the event loop and fetches off it
func (m Model) loadMore() (tea.Model, tea.Cmd) {
	page, ok := m.feed.BeginLoadMore()
	if !ok {
		return m, nil
	}
	m.state = m.feed.Snapshot()
	return m, tea.Batch(m.spinner.Tick, fetchPageCmd(m.ctx, m.feed, page))
}

func (m Model) notify(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, clearStatusCmd(m.statusID, statusTTL)
}

func (m Model) selected() (domain.JobPosting, bool) {
	items, i := m.state.Items, m.cursor
	if m.mode == viewBookmarks {
		items, i = m.saved, m.savedCursor
	}
	if i < 0 || i >= len(items) {
		return domain.JobPosting{}, false
	}
	return items[i], true
}

func (m Model) currentIndex() int {
	if m.mode == viewBookmarks {
		return m.savedCursor
	}
	return m.cursor
}

func (m Model) loading() bool {
	return m.state.IsInitialLoading() || m.state.IsFetchingMore()
}

func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, 0, len(m.state.Items)-1)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
