// Package export turns a checklist snapshot into JSON, PDF, DOCX and
// Markdown documents.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/idilsaglam/costcheck/internal/model"
)

// DefaultTitle is used when a snapshot is built without a title.
const DefaultTitle = "AWS Cost Analysis & Optimization Checklist"

// Format names an export target.
type Format string

const (
	JSON     Format = "json"
	PDF      Format = "pdf"
	DOCX     Format = "docx"
	Markdown Format = "md"
)

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "pdf":
		return PDF, nil
	case "docx", "word":
		return DOCX, nil
	case "md", "markdown":
		return Markdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Snapshot is the read-only input of every exporter. Documents are a
// deterministic function of it.
type Snapshot struct {
	Title       string
	GeneratedAt time.Time
	Locale      language.Tag
	Sections    model.Checklist
	Progress    int
	Rating      model.Rating
}

// NewSnapshot scores c once and freezes it with the given timestamp.
func NewSnapshot(title string, c model.Checklist, now time.Time, locale language.Tag) Snapshot {
	if title == "" {
		title = DefaultTitle
	}
	p := model.Progress(c)
	return Snapshot{
		Title:       title,
		GeneratedAt: now,
		Locale:      locale,
		Sections:    c,
		Progress:    p,
		Rating:      model.Rate(p),
	}
}

// Date is the generation date in the snapshot's locale.
func (s Snapshot) Date() string { return LocaleDate(s.GeneratedAt, s.Locale) }

// FileDate is Date made safe for file names.
func (s Snapshot) FileDate() string { return strings.ReplaceAll(s.Date(), "/", "-") }

// Exporter writes one document format.
type Exporter interface {
	Format() Format
	Filename(s Snapshot) string
	Write(w io.Writer, s Snapshot) error
}

// Prober is implemented by exporters whose backing library must be
// initialised before use. A failed probe disables the format.
type Prober interface {
	Probe() error
}
