package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/angple/internal/theme"
)

// Palette is the colour set of one site theme
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var palettes = map[string]Palette{
	theme.Default: {
		Primary:   lipgloss.Color("#2563EB"),
		Secondary: lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#F9FAFB"),
		TextMuted: lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#374151"),
		Surface:   lipgloss.Color("#1F2937"),
		Warning:   lipgloss.Color("#FFE66D"),
		Error:     lipgloss.Color("#FF6B6B"),
	},
	theme.Modern: {
		Primary:   lipgloss.Color("#A78BFA"),
		Secondary: lipgloss.Color("#94A3B8"),
		Text:      lipgloss.Color("#E2E8F0"),
		TextMuted: lipgloss.Color("#64748B"),
		Border:    lipgloss.Color("#1E293B"),
		Surface:   lipgloss.Color("#0F172A"),
		Warning:   lipgloss.Color("#FBBF24"),
		Error:     lipgloss.Color("#F87171"),
	},
	theme.Classic: {
		Primary:   lipgloss.Color("#CD853F"),
		Secondary: lipgloss.Color("#A0522D"),
		Text:      lipgloss.Color("#FDFAF3"),
		TextMuted: lipgloss.Color("#A89F91"),
		Border:    lipgloss.Color("#5C4A3A"),
		Surface:   lipgloss.Color("#3B2F2F"),
		Warning:   lipgloss.Color("#DAA520"),
		Error:     lipgloss.Color("#B22222"),
	},
}

// PaletteFor returns the palette of a theme id, falling back to default
func PaletteFor(id string) Palette {
	if p, ok := palettes[id]; ok {
		return p
	}
	return palettes[theme.Default]
}

// Styles are the rendered styles for one palette
type Styles struct {
	Palette Palette

	Header       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Meta         lipgloss.Style
	Tag          lipgloss.Style
	Body         lipgloss.Style
	Comment      lipgloss.Style
	StatusBar    lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style
	MockBadge    lipgloss.Style
	LiveBadge    lipgloss.Style
	Modal        lipgloss.Style
}

// NewStyles builds the styles for p
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Padding(0, 1),

		ItemSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Background(p.Surface).
			Foreground(p.Text).
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(p.TextMuted),

		Tag: lipgloss.NewStyle().
			Foreground(p.Secondary),

		Body: lipgloss.NewStyle().
			Padding(1, 2),

		Comment: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Border).
			PaddingLeft(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border),

		Help: lipgloss.NewStyle().
			Foreground(p.TextMuted),

		Error: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		MockBadge: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),

		LiveBadge: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
	}
}
