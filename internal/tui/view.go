package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qepting91/job-feed/internal/domain"
)

const cardHeight = 9

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#29366F")).Padding(0, 1)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	selectedStyle = cardStyle.BorderForeground(lipgloss.Color("#29366F"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("160")).Padding(0, 1)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func (m Model) View() string {
	var b strings.Builder

	title := "CareerPath"
	if m.mode == viewBookmarks {
		title = "CareerPath · Bookmarks"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.mode == viewBookmarks:
		b.WriteString(m.listView(m.saved, m.savedCursor, "No bookmarks yet. Press b on a job to save it."))
	case m.state.IsInitialLoading():
		b.WriteString(fmt.Sprintf("%s Loading jobs...\n", m.spinner.View()))
	default:
		b.WriteString(m.listView(m.state.Items, m.cursor, "No jobs found."))
		if m.state.IsFetchingMore() {
			b.WriteString(fmt.Sprintf("%s Loading more...\n", m.spinner.View()))
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView(items []domain.JobPosting, cursor int, empty string) string {
	if len(items) == 0 {
		return mutedStyle.Render(empty) + "\n"
	}

	visible := m.visibleCards()
	start := max(0, cursor-visible+1)
	end := min(len(items), start+visible)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.card(items[i], i == cursor))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d", cursor+1, len(items))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) visibleCards() int {
	if m.height <= 0 {
		return 3
	}
	return max(1, (m.height-6)/cardHeight)
}

func (m Model) card(p domain.JobPosting, selected bool) string {
	mark := " "
	if m.marks[p.ID] {
		mark = markStyle.Render("★")
	}

	lines := []string{
		mark + " " + titleStyle.Render(p.Title.Display()),
		fmt.Sprintf("%s · %s", p.CompanyName.Display(), p.Place.Display()),
		fmt.Sprintf("Salary: %s   Type: %s", p.Salary.Display(), p.JobType.Display()),
		fmt.Sprintf("Experience: %s   Qualification: %s", p.Experience.Display(), p.Qualification.Display()),
		fmt.Sprintf("Vacancies: %s   Shift: %s", p.Vacancies.Display(), p.ShiftTiming.Display()),
		fmt.Sprintf("Locality: %s", p.Locality.Display()),
		mutedStyle.Render("Updated " + p.UpdatedOn.Display()),
	}
	if actions := contactActions(p); actions != "" {
		lines = append(lines, actions)
	}

	style := cardStyle
	if selected {
		style = selectedStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func contactActions(p domain.JobPosting) string {
	var actions []string
	if p.WhatsAppNo != "" {
		actions = append(actions, "[w] Contact HR")
	}
	if p.WhatsAppLink != "" {
		actions = append(actions, "[l] Join WhatsApp Group")
	}
	return strings.Join(actions, "  ")
}

func (m Model) helpLine() string {
	if m.mode == viewBookmarks {
		return "j/k: move | b: remove | w: WhatsApp | l: group | tab: jobs | q: quit"
	}
	return "j/k: move | n: more | b: bookmark | w: WhatsApp | l: group | tab: bookmarks | q: quit"
}
