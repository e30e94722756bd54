package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/idilsaglam/costcheck/internal/model"
)

// JSONFilename is the fixed name of the JSON export.
const JSONFilename = "aws_cost_checklist.json"

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Document is the JSON export file.
type Document struct {
	Title       string          `json:"title"`
	Date        string          `json:"date"`
	Progress    int             `json:"progress"`
	ScoreRating string          `json:"scoreRating"`
	Sections    model.Checklist `json:"sections"`
}

// NewDocument converts a snapshot into the export document.
func NewDocument(s Snapshot) Document {
	return Document{
		Title:       s.Title,
		Date:        s.GeneratedAt.UTC().Format(isoMillis),
		Progress:    s.Progress,
		ScoreRating: s.Rating.Label,
		Sections:    s.Sections,
	}
}

// GeneratedAt parses the document date.
func (d Document) GeneratedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, d.Date)
}

// Decode reads a JSON export back.
func Decode(r io.Reader) (Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("json decode: %w", err)
	}
	if len(d.Sections) == 0 {
		return Document{}, fmt.Errorf("json decode: document has no sections")
	}
	return d, nil
}

type jsonExporter struct{}

// NewJSON returns the JSON exporter.
func NewJSON() Exporter { return jsonExporter{} }

func (jsonExporter) Format() Format           { return JSON }
func (jsonExporter) Filename(Snapshot) string { return JSONFilename }

func (jsonExporter) Write(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
