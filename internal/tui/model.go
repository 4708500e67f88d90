package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/existflow/angple/internal/api"
	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/theme"
)

// Screen is what the browser is showing
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenHelp
)

const (
	pageSize    = 15
	commentSize = 20
)

// Model is the board browser
type Model struct {
	ctx    context.Context
	client *api.Client
	themes *theme.Store
	styles Styles

	// themeEvents receives every successful theme switch
	themeEvents chan theme.Theme

	// Data
	page     *model.Page[model.FreePost]
	pageNum  int
	post     *model.FreePost
	comments []model.FreeComment

	// UI state
	width    int
	height   int
	screen   Screen
	prev     Screen
	cursor   int
	scroll   int
	loading  bool
	spinner  spinner.Model
	err      error
	message  string
	mockMode bool
}

// NewModel creates the browser. Posts load on Init.
func NewModel(ctx context.Context, client *api.Client, themes *theme.Store) Model {
	logger.Info("Initializing TUI model")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		client:      client,
		themes:      themes,
		themeEvents: make(chan theme.Theme, 1),
		pageNum:     1,
		spinner:     sp,
		mockMode:    client.IsMockMode(),
	}
	m.applyTheme(themes.Current())
	themes.Subscribe(m.publishTheme)
	return m
}

// publishTheme keeps only the latest switch when the browser lags behind
func (m Model) publishTheme(t theme.Theme) {
	for {
		select {
		case m.themeEvents <- t:
			return
		default:
		}
		select {
		case <-m.themeEvents:
		default:
		}
	}
}

func (m *Model) applyTheme(t theme.Theme) {
	m.styles = NewStyles(PaletteFor(t.ID))
	m.spinner.Style = m.styles.Header
}

func (m *Model) currentPost() *model.FreePost {
	if m.page == nil || m.cursor >= len(m.page.Items) {
		return nil
	}
	return &m.page.Items[m.cursor]
}

func (m *Model) totalPages() int {
	if m.page == nil {
		return 1
	}
	if m.page.TotalPages < 1 {
		return 1
	}
	return m.page.TotalPages
}
