package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/idilsaglam/costcheck/internal/model"
)

const (
	pdfLeft      = 15.0
	pdfIndent    = 20.0
	pdfLineStep  = 8.0
	pdfPageLimit = 270.0
	pdfTopMargin = 20.0
)

type pdfExporter struct {
	uncompressed bool // plain content streams, for inspecting output
}

// NewPDF returns the PDF summary exporter.
func NewPDF() Exporter { return pdfExporter{} }

func (pdfExporter) Format() Format { return PDF }

func (pdfExporter) Filename(s Snapshot) string {
	return fmt.Sprintf("aws_cost_optimization_summary_%s.pdf", s.FileDate())
}

// Probe renders a blank page to make sure the font tables load.
func (pdfExporter) Probe() error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(pdfLeft, pdfTopMargin, "probe")
	return doc.Output(io.Discard)
}

// Write renders a one-or-more page summary: title, date, overall score and
// one line per section.
func (e pdfExporter) Write(w io.Writer, s Snapshot) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(!e.uncompressed)
	doc.SetCreationDate(s.GeneratedAt)
	doc.SetModificationDate(s.GeneratedAt)
	doc.SetCatalogSort(true)
	doc.SetTitle(s.Title, true)
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(15, 60, 100)
	doc.Text(pdfLeft, 20, tr(s.Title))

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.Text(pdfLeft, 28, tr("Generated on "+s.Date()))

	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(pdfIndent, 43, fmt.Sprintf("Overall Optimization Score: %d%%", s.Progress))
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(pdfIndent, 50, tr("Rating: "+s.Rating.Label))
	doc.SetFont("Helvetica", "I", 10)
	doc.Text(pdfIndent, 56, tr(s.Rating.Description))

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(pdfLeft, 68, "Section Summaries:")

	doc.SetFont("Helvetica", "", 11)
	y := 78.0
	for _, sec := range s.Sections {
		p := model.SectionProgress(sec)
		doc.Text(pdfIndent, y, tr(fmt.Sprintf("%s: %d%% (%s)", sec.Title, p, model.Rate(p).Label)))
		y += pdfLineStep
		if y > pdfPageLimit {
			doc.AddPage()
			doc.SetFont("Helvetica", "", 11)
			y = pdfTopMargin
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}
