package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/theme"
)

// postsLoadedMsg carries one page of posts
type postsLoadedMsg struct {
	page *model.Page[model.FreePost]
	err  error
}

// postLoadedMsg carries a post and its first comments
type postLoadedMsg struct {
	post     *model.FreePost
	comments []model.FreeComment
	err      error
}

// modeChangedMsg is sent after the mock flag was persisted
type modeChangedMsg struct {
	enabled bool
	err     error
}

// themeChangedMsg carries a switch observed through the theme store
type themeChangedMsg struct {
	theme theme.Theme
}

// themeFailedMsg is sent when a requested switch was rejected
type themeFailedMsg struct {
	err error
}

// Init starts the spinner and loads the first page
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPosts(m.pageNum), m.waitTheme())
}

func (m Model) loadPosts(page int) tea.Cmd {
	return func() tea.Msg {
		p, err := m.client.GetFreePosts(m.ctx, page, pageSize)
		return postsLoadedMsg{page: p, err: err}
	}
}

func (m Model) loadPost(id string) tea.Cmd {
	return func() tea.Msg {
		post, err := m.client.GetFreePost(m.ctx, id)
		if err != nil {
			return postLoadedMsg{err: err}
		}
		comments, err := m.client.GetFreeComments(m.ctx, id, 1, commentSize)
		if err != nil {
			return postLoadedMsg{post: post, err: err}
		}
		return postLoadedMsg{post: post, comments: comments.Items}
	}
}

func (m Model) setMockMode(enabled bool) tea.Cmd {
	return func() tea.Msg {
		return modeChangedMsg{enabled: enabled, err: m.client.SetMockMode(m.ctx, enabled)}
	}
}

// switchTheme asks the store to switch. The restyle arrives through
// waitTheme.
func (m Model) switchTheme(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.themes.Switch(m.ctx, id); err != nil {
			return themeFailedMsg{err: err}
		}
		return nil
	}
}

// waitTheme blocks until the theme store reports a switch
func (m Model) waitTheme() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-m.themeEvents:
			return themeChangedMsg{theme: t}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case postsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			logger.Error("Failed to load posts", logger.F("error", msg.err))
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.page = msg.page
		m.pageNum = msg.page.Page
		if m.cursor >= len(m.page.Items) {
			m.cursor = 0
		}
		return m, nil

	case postLoadedMsg:
		m.loading = false
		if msg.err != nil {
			logger.Error("Failed to load post", logger.F("error", msg.err))
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.post = msg.post
		m.comments = msg.comments
		m.scroll = 0
		m.screen = ScreenDetail
		return m, nil

	case modeChangedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mockMode = msg.enabled
		m.message = "Mode: live"
		if msg.enabled {
			m.message = "Mode: mock"
		}
		m.loading = true
		m.screen = ScreenList
		return m, m.loadPosts(1)

	case themeChangedMsg:
		m.applyTheme(msg.theme)
		m.message = fmt.Sprintf("Theme: %s", msg.theme.Name)
		return m, m.waitTheme()

	case themeFailedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.screen == ScreenHelp {
			m.screen = m.prev
			return m, nil
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.prev = m.screen
		m.screen = ScreenHelp
		return m, nil

	case key.Matches(msg, keys.Mock):
		return m, m.setMockMode(!m.mockMode)

	case key.Matches(msg, keys.Theme):
		return m, m.switchTheme(m.themes.Next())
	}

	if m.loading {
		return m, nil
	}

	if m.screen == ScreenDetail {
		return m.handleDetailKeys(msg)
	}
	return m.handleListKeys(msg)
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.page != nil && m.cursor < len(m.page.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Next):
		if m.pageNum < m.totalPages() {
			m.loading = true
			m.cursor = 0
			return m, m.loadPosts(m.pageNum + 1)
		}

	case key.Matches(msg, keys.Prev):
		if m.pageNum > 1 {
			m.loading = true
			m.cursor = 0
			return m, m.loadPosts(m.pageNum - 1)
		}

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.loadPosts(m.pageNum)

	case key.Matches(msg, keys.Enter):
		if p := m.currentPost(); p != nil {
			m.loading = true
			return m, m.loadPost(p.ID)
		}
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.screen = ScreenList
		m.post = nil
		m.comments = nil

	case key.Matches(msg, keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}

	case key.Matches(msg, keys.Down):
		m.scroll++

	case key.Matches(msg, keys.Refresh):
		if m.post != nil {
			m.loading = true
			return m, m.loadPost(m.post.ID)
		}
	}

	return m, nil
}
