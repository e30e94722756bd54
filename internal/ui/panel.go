package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/costcheck/internal/model"
)

// ProgressBar renders a bar coloured by tone, followed by the percentage.
func (t Theme) ProgressBar(progress, width int) string {
	if width < 5 {
		width = 5
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	bar := t.Tone(progress, strings.Repeat(t.BarFull, filled)) +
		t.Muted.Render(strings.Repeat(t.BarEmpty, width-filled))
	return fmt.Sprintf("%s %3d%%", bar, progress)
}

// Panel frames lines with the theme's border.
func (t Theme) Panel(lines []string) string {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Legend lists the rating bands, best first.
func (t Theme) Legend() string {
	var parts []string
	for _, b := range model.Bands() {
		rng := fmt.Sprintf("%d-%d%%", b.Min, b.Max)
		if b.Max == 100 {
			rng = fmt.Sprintf("%d%%+", b.Min)
		}
		parts = append(parts, t.Badges[b.Band].Render(b.Label+": "+rng))
	}
	return strings.Join(parts, t.Muted.Render(" · "))
}

// Summary is the header block shared by the CLI and the TUI: overall bar,
// rating label and its description.
func (t Theme) Summary(c model.Checklist, barWidth int) []string {
	p := model.Progress(c)
	r := model.Rate(p)
	checked, total := c.Counts()
	return []string{
		fmt.Sprintf("%s  %s  %s",
			t.Accent.Render("Overall Progress"),
			t.ProgressBar(p, barWidth),
			t.Badge(r),
		),
		t.Muted.Render(fmt.Sprintf("%d of %d items done. %s", checked, total, r.Description)),
	}
}

// SectionLine renders a section header row: fold marker, title, bar, badge.
func (t Theme) SectionLine(s model.Section, barWidth int) string {
	p := model.SectionProgress(s)
	marker := t.Collapsed
	if s.Expanded {
		marker = t.Expanded
	}
	return fmt.Sprintf("%s %s  %s  %s",
		t.Muted.Render(marker),
		t.Title.Render(t.SectionTitle(s)),
		t.ProgressBar(p, barWidth),
		t.Badge(model.Rate(p)),
	)
}

// ItemLine renders one checklist item; checked items are struck through.
func (t Theme) ItemLine(it model.Item, indent int) string {
	pad := strings.Repeat("  ", indent)
	if it.Checked {
		return pad + t.Success.Render(t.BoxChecked) + " " + t.Done.Render(it.Text)
	}
	return pad + t.Muted.Render(t.BoxUnchecked) + " " + it.Text
}

// SubsectionLine renders a subsection heading.
func (t Theme) SubsectionLine(s model.Subsection, indent int) string {
	return strings.Repeat("  ", indent) + t.Accent.Render(s.Title)
}
