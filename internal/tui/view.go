package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/angple/internal/recommend"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var main string
	switch m.screen {
	case ScreenHelp:
		main = m.renderHelp()
	case ScreenDetail:
		main = m.renderDetail()
	default:
		main = m.renderList()
	}

	if m.loading {
		main = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
			m.styles.Modal.Render(m.spinner.View()+" Loading..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Free board") + "\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n")
	}

	if m.page == nil || len(m.page.Items) == 0 {
		b.WriteString(m.styles.Meta.Render("  No posts.") + "\n")
		return lipgloss.NewStyle().Height(m.height - 2).Render(b.String())
	}

	titleWidth := m.width - 40
	if titleWidth < 20 {
		titleWidth = 20
	}

	for i, p := range m.page.Items {
		cursor := "  "
		style := m.styles.Item
		if i == m.cursor {
			cursor = "❯ "
			style = m.styles.ItemSelected
		}

		line := fmt.Sprintf("%s%-4s %-*s %s",
			cursor, p.ID, titleWidth, truncate(p.Title, titleWidth),
			m.styles.Meta.Render(fmt.Sprintf("%-14s 👁 %-6s 💬 %d",
				truncate(p.Author, 14), recommend.FormatNumber(int64(p.Views)), p.CommentsCount)))
		b.WriteString(style.Render(line) + "\n")
	}

	b.WriteString("\n" + m.styles.Meta.Render(fmt.Sprintf("  page %d/%d · %d posts", m.pageNum, m.totalPages(), m.page.Total)))
	return lipgloss.NewStyle().Height(m.height - 2).Render(b.String())
}

func (m Model) renderDetail() string {
	if m.post == nil {
		return ""
	}
	p := m.post

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(p.Title) + "\n")
	b.WriteString(m.styles.Meta.Render(fmt.Sprintf(" %s · %s · 👁 %d · ♥ %d", p.Author, p.CreatedAt, p.Views, p.Likes)) + "\n")
	if len(p.Tags) > 0 {
		b.WriteString(m.styles.Tag.Render(" #"+strings.Join(p.Tags, " #")) + "\n")
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	b.WriteString(m.styles.Body.Width(width).Render(p.Content) + "\n")

	if len(m.comments) > 0 {
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("Comments (%d)", len(m.comments))) + "\n")
		for _, c := range m.comments {
			indent := c.Depth * 2
			head := m.styles.Tag.Render(c.Author) + " " + m.styles.Meta.Render(fmt.Sprintf("♥ %d", c.Likes))
			block := m.styles.Comment.Width(width - indent).Render(head + "\n" + c.Content)
			b.WriteString(lipgloss.NewStyle().MarginLeft(indent).Render(block) + "\n")
		}
	}

	lines := strings.Split(b.String(), "\n")
	start := m.scroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + m.height - 2
	if end > len(lines) || m.height <= 2 {
		end = len(lines)
	}
	return lipgloss.NewStyle().Height(m.height - 2).Render(strings.Join(lines[start:end], "\n"))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys") + "\n\n")
	for _, k := range helpKeys {
		h := k.Help()
		b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, m.styles.Help.Render(h.Desc)))
	}
	b.WriteString("\n" + m.styles.Help.Render("  press any key to go back"))
	return m.styles.Modal.Render(b.String())
}

func (m Model) renderStatusBar() string {
	mode := m.styles.LiveBadge.Render("LIVE")
	if m.mockMode {
		mode = m.styles.MockBadge.Render("MOCK")
	}

	token := "no token"
	if status := m.client.TokenStatus(); status.IsValid {
		token = "token ok"
	} else if status.HasToken {
		token = "token expired"
	}

	parts := []string{mode, token, "theme " + m.themes.Current().ID}
	if m.message != "" {
		parts = append(parts, m.message)
	}
	parts = append(parts, "? help")

	return m.styles.StatusBar.Width(m.width).Render(strings.Join(parts, " · "))
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
