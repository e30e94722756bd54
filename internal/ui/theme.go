package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/costcheck/internal/model"
)

// Theme bundles palette + glyphs + box borders.
// One checklist model is rendered in every theme; nothing else varies.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error lipgloss.Style
	Selected, Done, Help                 lipgloss.Style

	// Progress colours by tone, and rating badge colours by band.
	Tones  map[model.Tone]lipgloss.Style
	Badges map[model.Band]lipgloss.Style

	BoxUnchecked, BoxChecked string
	Expanded, Collapsed      string
	BarFull, BarEmpty        string

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	// ShowIcons enables section icons (the icon-enhanced look).
	ShowIcons bool
}

// Themes lists the names accepted by ThemeNamed.
var Themes = []string{"classic", "neon", "dark", "mono"}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

func badges(colors [6]string) map[model.Band]lipgloss.Style {
	bands := []model.Band{model.NeedsAttention, model.GettingStarted, model.Fair, model.Good, model.VeryGood, model.Excellent}
	out := make(map[model.Band]lipgloss.Style, len(bands))
	for i, b := range bands {
		out[b] = fg(colors[i]).Bold(true)
	}
	return out
}

// ThemeNamed returns the named theme; unknown names fall back to classic.
func ThemeNamed(name string, icons bool) Theme {
	var t Theme
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		t = Theme{
			Name:  "neon",
			Title: fg("13").Bold(true), Muted: fg("8"), Accent: fg("14"),
			Success: fg("10"), Error: fg("9").Bold(true),
			Tones:        map[model.Tone]lipgloss.Style{model.ToneLow: fg("9"), model.ToneMedium: fg("11"), model.ToneHigh: fg("10")},
			Badges:       badges([6]string{"9", "208", "11", "14", "10", "10"}),
			BoxUnchecked: "◻", BoxChecked: "◼",
			Expanded: "▾", Collapsed: "▸",
			BarFull: "█", BarEmpty: "░",
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
		}
	case "dark":
		t = Theme{
			Name:  "dark",
			Title: fg("255").Bold(true), Muted: fg("245"), Accent: fg("75"),
			Success: fg("42"), Error: fg("203").Bold(true),
			Tones:        map[model.Tone]lipgloss.Style{model.ToneLow: fg("203"), model.ToneMedium: fg("214"), model.ToneHigh: fg("42")},
			Badges:       badges([6]string{"203", "209", "221", "75", "78", "42"}),
			BoxUnchecked: "☐", BoxChecked: "☑",
			Expanded: "▼", Collapsed: "▶",
			BarFull: "━", BarEmpty: "─",
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("240"),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		t = Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain.Bold(true),
			Tones:        map[model.Tone]lipgloss.Style{model.ToneLow: plain, model.ToneMedium: plain, model.ToneHigh: plain},
			Badges:       badges([6]string{"", "", "", "", "", ""}),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Expanded: "v", Collapsed: ">",
			BarFull: "#", BarEmpty: ".",
			Border: asciiBorder, BorderColor: lipgloss.NoColor{},
		}
		t.Done = plain
	default: // classic
		t = Theme{
			Name:  "classic",
			Title: lipgloss.NewStyle().Bold(true), Muted: lipgloss.NewStyle().Faint(true), Accent: fg("12"),
			Success: fg("42"), Error: fg("9").Bold(true),
			Tones:        map[model.Tone]lipgloss.Style{model.ToneLow: fg("196"), model.ToneMedium: fg("214"), model.ToneHigh: fg("42")},
			Badges:       badges([6]string{"196", "208", "220", "33", "42", "34"}),
			BoxUnchecked: "☐", BoxChecked: "☑",
			Expanded: "▾", Collapsed: "▸",
			BarFull: "█", BarEmpty: "░",
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
		}
	}
	if t.Name != "mono" {
		t.Done = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	}
	t.Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.Help = lipgloss.NewStyle().Faint(true)
	t.ShowIcons = icons
	return t
}

// Tone styles s with the colour for progress.
func (t Theme) Tone(progress int, s string) string {
	return t.Tones[model.ToneOf(progress)].Render(s)
}

// Badge renders a rating label in its band colour.
func (t Theme) Badge(r model.Rating) string {
	return t.Badges[r.Band].Render(r.Label)
}

// Box returns the checkbox glyph for an item state.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}

// SectionTitle prefixes the icon when icons are enabled.
func (t Theme) SectionTitle(s model.Section) string {
	if t.ShowIcons && s.Icon != "" {
		return s.Icon + " " + s.Title
	}
	return s.Title
}
