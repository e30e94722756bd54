package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/idilsaglam/costcheck/internal/catalog"
	"github.com/idilsaglam/costcheck/internal/export"
	"github.com/idilsaglam/costcheck/internal/model"
	"github.com/idilsaglam/costcheck/internal/ui"
)

func fixture() model.Checklist {
	return model.Checklist{
		{ID: 1, Title: "Billing", Expanded: true, Items: []model.Item{
			{ID: "a", Text: "Enable Cost Explorer"},
			{ID: "b", Text: "Set budgets"},
		}},
		{ID: 2, Title: "Compute", Subsections: []model.Subsection{
			{ID: "ec2", Title: "EC2", Items: []model.Item{
				{ID: "c", Text: "Rightsize"},
				{ID: "d", Text: "Use Savings Plans"},
			}},
		}},
	}
}

func newTestModel(t *testing.T, reg *export.Registry) Model {
	t.Helper()
	return New(fixture(), Options{
		Theme:     ui.ThemeNamed("mono", false),
		Locale:    language.AmericanEnglish,
		OutputDir: t.TempDir(),
		Registry:  reg,
		Now:       func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) },
	})
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(Model), c
	}
	return m, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNavigateAndToggle(t *testing.T) {
	m := newTestModel(t, nil)
	require.Len(t, m.rows, 4) // Billing, a, b, Compute

	m, _ = press(t, m, "down", "space")
	assert.Equal(t, 25, model.Progress(m.Checklist()))
	assert.Equal(t, 1, m.cursor, "cursor stays on the toggled item")

	m, _ = press(t, m, "down", "down", "enter") // expand Compute
	require.Len(t, m.rows, 7)
	assert.Equal(t, rowSection, m.rows[m.cursor].kind)

	m, _ = press(t, m, "down", "space") // subsection heading: no-op
	assert.Equal(t, 25, model.Progress(m.Checklist()))

	m, _ = press(t, m, "down", "space")
	assert.Equal(t, 50, model.Progress(m.Checklist()))
	item, ok := m.Checklist().Item("c")
	require.True(t, ok)
	assert.True(t, item.Checked)

	m, _ = press(t, m, "space")
	assert.Equal(t, 25, model.Progress(m.Checklist()), "toggle twice restores")
}

func TestCursorClamps(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "up", "up")
	assert.Equal(t, 0, m.cursor)
	m, _ = press(t, m, "G")
	assert.Equal(t, len(m.rows)-1, m.cursor)
	m, _ = press(t, m, "down")
	assert.Equal(t, len(m.rows)-1, m.cursor)
	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.cursor)
}

func TestCollapseAllKeepsCursorOnSection(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "E")
	require.Len(t, m.rows, 7)

	m, _ = press(t, m, "G") // item d in Compute
	require.Equal(t, "d", m.rows[m.cursor].item.ID)

	m, _ = press(t, m, "C")
	require.Len(t, m.rows, 2)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 2, m.rows[m.cursor].section.ID)
}

func TestResetAll(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "down", "space", "down", "space")
	require.Equal(t, 50, model.Progress(m.Checklist()))

	m, _ = press(t, m, "r")
	assert.Equal(t, 0, model.Progress(m.Checklist()))
	assert.True(t, m.Checklist()[0].Expanded, "reset leaves folding alone")
	assert.Contains(t, m.View(), "All items unchecked.")
}

func TestExportKeysWaitForCapabilities(t *testing.T) {
	reg := export.DefaultRegistry(nil)
	m := newTestModel(t, reg)

	_, cmd := press(t, m, "x")
	assert.Nil(t, cmd, "export disabled before the load")
	assert.NotContains(t, m.help.View(m.keys), "json")

	msg := m.loadCapabilities()()
	m, _ = send(t, m, msg)
	assert.True(t, m.keys.ExportJSON.Enabled())
	assert.Contains(t, m.View(), "Ready to export.")

	m, _ = press(t, m, "down", "space")
	m, cmd = press(t, m, "x")
	require.NotNil(t, cmd)
	done, ok := cmd().(exportedMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, filepath.Join(m.opts.OutputDir, export.JSONFilename), done.path)

	f, err := os.Open(done.path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := export.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 25, doc.Progress)

	m, _ = send(t, m, done)
	assert.Contains(t, m.View(), "Saved ")
}

type brokenPDF struct{}

func (brokenPDF) Format() export.Format                  { return export.PDF }
func (brokenPDF) Filename(export.Snapshot) string        { return "broken.pdf" }
func (brokenPDF) Write(io.Writer, export.Snapshot) error { return nil }
func (brokenPDF) Probe() error                           { return errors.New("font table missing") }

func TestFailedCapabilityStaysDisabled(t *testing.T) {
	reg := export.NewRegistry(nil, export.NewJSON(), brokenPDF{})
	m := newTestModel(t, reg)

	m, _ = send(t, m, m.loadCapabilities()())
	assert.True(t, m.keys.ExportJSON.Enabled())
	assert.False(t, m.keys.ExportPDF.Enabled())
	assert.False(t, m.keys.ExportDOCX.Enabled(), "unregistered formats stay off")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "font table missing")

	_, cmd := press(t, m, "p")
	assert.Nil(t, cmd)
}

func TestExportFailureIsReported(t *testing.T) {
	reg := export.DefaultRegistry(nil)
	require.NoError(t, reg.Load(context.Background()))
	m := newTestModel(t, reg)
	m, _ = send(t, m, capabilitiesMsg{})
	before := m.Checklist()

	m, _ = send(t, m, exportedMsg{format: export.PDF, err: errors.New("disk full")})
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "PDF export failed: disk full")
	assert.Equal(t, before, m.Checklist())
}

func TestCatalogReloadCarriesState(t *testing.T) {
	ch := make(chan catalog.Update, 1)
	m := newTestModel(t, nil)
	m.opts.Updates = ch

	m, _ = press(t, m, "down", "space") // check a
	next := fixture()
	next[0].Items = append(next[0].Items, model.Item{ID: "e", Text: "Tag resources"})

	m, cmd := send(t, m, catalogMsg{Catalog: catalog.Catalog{Title: "Edited", Sections: next}})
	require.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, "Edited", m.title)
	assert.Len(t, m.rows, 5)
	a, _ := m.Checklist().Item("a")
	assert.True(t, a.Checked)
	assert.Equal(t, 20, model.Progress(m.Checklist()))

	m, _ = send(t, m, catalogMsg{Err: catalog.ErrInvalid})
	assert.True(t, m.statusErr)
	assert.Equal(t, 20, model.Progress(m.Checklist()))

	close(ch)
	assert.Nil(t, cmd())
}

func TestViewShowsHeaderAndRows(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	v := m.View()
	assert.Contains(t, v, export.DefaultTitle)
	assert.Contains(t, v, "Overall Progress")
	assert.Contains(t, v, "Excellent: 90%+")
	assert.Contains(t, v, "> v Billing")
	assert.Contains(t, v, "[ ] Set budgets")
}

func TestViewportFollowsCursor(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: chromeLines + 3})
	require.Equal(t, 3, m.viewport.Height)

	m, _ = press(t, m, "E", "G")
	assert.Equal(t, 6, m.cursor)
	assert.Equal(t, 4, m.viewport.YOffset)

	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
