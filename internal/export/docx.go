package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"

	"github.com/idilsaglam/costcheck/internal/model"
)

// Twips for item indentation, matching one and two tab stops.
const (
	indentItem    = 720
	indentSubItem = 1440
)

var toneColors = map[model.Tone]string{
	model.ToneLow:    "FF0000",
	model.ToneMedium: "FF8C00",
	model.ToneHigh:   "008000",
}

type docxExporter struct{}

// NewDOCX returns the Word report exporter.
func NewDOCX() Exporter { return docxExporter{} }

func (docxExporter) Format() Format { return DOCX }

func (docxExporter) Filename(s Snapshot) string {
	return fmt.Sprintf("aws_cost_optimization_report_%s.docx", s.FileDate())
}

// Probe opens the blank template and saves it.
func (docxExporter) Probe() error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	if err := doc.Write(io.Discard); err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	return nil
}

// Write renders the full report: score, summary table and every item.
func (docxExporter) Write(w io.Writer, s Snapshot) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	heading := func(text string, level uint) error {
		if _, err := doc.AddHeading(text, level); err != nil {
			return fmt.Errorf("docx: heading %q: %w", text, err)
		}
		return nil
	}

	if err := heading(s.Title, 1); err != nil {
		return err
	}
	doc.AddEmptyParagraph().AddText("Generated on " + s.Date()).Color("666666")
	if err := heading(fmt.Sprintf("Overall Optimization Score: %d%%", s.Progress), 2); err != nil {
		return err
	}
	doc.AddEmptyParagraph().AddText("Rating: " + s.Rating.Label).
		Bold(true).
		Size(14).
		Color(toneColors[model.ToneOf(s.Progress)])
	doc.AddParagraph(s.Rating.Description)

	if err := heading("Section Breakdown", 2); err != nil {
		return err
	}
	tbl := doc.AddTable()
	tbl.Style("LightList-Accent1")
	hdr := tbl.AddRow()
	for _, h := range []string{"Section", "Progress", "Rating"} {
		hdr.AddCell().AddParagraph(h)
	}
	for _, sec := range s.Sections {
		p := model.SectionProgress(sec)
		row := tbl.AddRow()
		row.AddCell().AddParagraph(sec.Title)
		row.AddCell().AddParagraph(fmt.Sprintf("%d%%", p))
		row.AddCell().AddParagraph(model.Rate(p).Label)
	}

	for _, sec := range s.Sections {
		if err := heading(sec.Title, 3); err != nil {
			return err
		}
		for _, it := range sec.Items {
			addItem(doc, it, indentItem)
		}
		for _, sub := range sec.Subsections {
			if err := heading(sub.Title, 4); err != nil {
				return err
			}
			for _, it := range sub.Items {
				addItem(doc, it, indentSubItem)
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	return repack(w, buf.Bytes(), s.GeneratedAt)
}

func addItem(doc *docx.RootDoc, it model.Item, indent int) {
	box := "☐ "
	if it.Checked {
		box = "☑ "
	}
	p := doc.AddEmptyParagraph()
	p.Indent(&ctypes.Indent{Left: &indent})
	p.AddText(box).Bold(true)
	r := p.AddText(it.Text)
	if it.Checked {
		r.Strike(true).Color("999999")
	}
}

// repack rewrites the package with entries sorted by name and stamped with
// at, so the same snapshot always yields the same bytes.
func repack(w io.Writer, pkg []byte, at time.Time) error {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	files := slices.Clone(zr.File)
	slices.SortFunc(files, func(a, b *zip.File) int { return strings.Compare(a.Name, b.Name) })

	zw := zip.NewWriter(w)
	for _, f := range files {
		if err := copyEntry(zw, f, at); err != nil {
			return fmt.Errorf("docx: %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx: %w", err)
	}
	return nil
}

func copyEntry(zw *zip.Writer, f *zip.File, at time.Time) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: at})
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, rc)
	return err
}
