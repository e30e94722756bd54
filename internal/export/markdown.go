package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/costcheck/internal/model"
)

type markdownExporter struct{}

// NewMarkdown returns the Markdown report exporter. It mirrors the DOCX
// report and feeds the terminal report view.
func NewMarkdown() Exporter { return markdownExporter{} }

func (markdownExporter) Format() Format { return Markdown }

func (markdownExporter) Filename(s Snapshot) string {
	return fmt.Sprintf("aws_cost_optimization_report_%s.md", s.FileDate())
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func (markdownExporter) Write(w io.Writer, s Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "_Generated on %s_\n\n", s.Date())
	fmt.Fprintf(&b, "## Overall Optimization Score: %d%%\n\n", s.Progress)
	fmt.Fprintf(&b, "**Rating: %s**\n\n%s\n\n", s.Rating.Label, s.Rating.Description)

	b.WriteString("## Section Breakdown\n\n")
	b.WriteString("| Section | Progress | Rating |\n|---|:---:|:---:|\n")
	for _, sec := range s.Sections {
		p := model.SectionProgress(sec)
		fmt.Fprintf(&b, "| %s | %d%% | %s |\n", cellEscaper.Replace(sec.Title), p, model.Rate(p).Label)
	}

	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "\n### %s\n\n", sec.Title)
		writeMarkdownItems(&b, sec.Items)
		for _, sub := range sec.Subsections {
			fmt.Fprintf(&b, "\n#### %s\n\n", sub.Title)
			writeMarkdownItems(&b, sub.Items)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

func writeMarkdownItems(b *strings.Builder, items []model.Item) {
	for _, it := range items {
		if it.Checked {
			fmt.Fprintf(b, "- [x] ~~%s~~\n", it.Text)
		} else {
			fmt.Fprintf(b, "- [ ] %s\n", it.Text)
		}
	}
}
