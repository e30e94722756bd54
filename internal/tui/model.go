// Package tui is the interactive checklist.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/idilsaglam/costcheck/internal/catalog"
	"github.com/idilsaglam/costcheck/internal/export"
	"github.com/idilsaglam/costcheck/internal/model"
	"github.com/idilsaglam/costcheck/internal/store/jsonstore"
	"github.com/idilsaglam/costcheck/internal/ui"
)

const (
	headerLines = 5 // title, legend, progress, description, blank
	footerLines = 3 // blank, status, help
	chromeLines = headerLines + footerLines + 2
	barWidth    = 20
)

// Options configures a session.
type Options struct {
	Title     string
	Theme     ui.Theme
	Locale    language.Tag
	OutputDir string
	Registry  *export.Registry
	Logger    *zap.Logger

	// Updates delivers catalog reloads; nil disables reloading.
	Updates <-chan catalog.Update
	Now     func() time.Time
}

type capabilitiesMsg struct{ err error }

type exportedMsg struct {
	format export.Format
	path   string
	err    error
}

type catalogMsg catalog.Update

// Model is the Bubble Tea model. The checklist is replaced, never mutated.
type Model struct {
	opts      Options
	title     string
	checklist model.Checklist

	rows   []row
	cursor int

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int

	status    string
	statusErr bool
}

// New builds a model showing c.
func New(c model.Checklist, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Registry == nil {
		opts.Registry = export.DefaultRegistry(opts.Logger)
	}
	if opts.Theme.Name == "" {
		opts.Theme = ui.ThemeNamed("", false)
	}
	title := opts.Title
	if title == "" {
		title = export.DefaultTitle
	}

	m := Model{
		opts:      opts,
		title:     title,
		checklist: c,
		rows:      flatten(c),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(0, 0),
		status:    "Loading export formats…",
	}
	m.help.Styles.ShortKey = opts.Theme.Accent
	m.help.Styles.FullKey = opts.Theme.Accent
	m.resize(80, 24)
	return m
}

// Checklist returns the current checklist.
func (m Model) Checklist() model.Checklist { return m.checklist }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCapabilities(), waitForCatalog(m.opts.Updates))
}

func (m Model) loadCapabilities() tea.Cmd {
	reg := m.opts.Registry
	return func() tea.Msg {
		return capabilitiesMsg{err: reg.Load(context.Background())}
	}
}

func waitForCatalog(ch <-chan catalog.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return catalogMsg(u)
	}
}

func (m Model) exportCmd(f export.Format) tea.Cmd {
	snap := export.NewSnapshot(m.title, m.checklist, m.opts.Now(), m.opts.Locale)
	reg, dir, logger := m.opts.Registry, m.opts.OutputDir, m.opts.Logger
	return func() tea.Msg {
		p, err := jsonstore.SaveExport(dir, reg, f, snap)
		if err != nil {
			logger.Error("export failed", zap.String("format", string(f)), zap.Error(err))
		} else {
			logger.Info("export written", zap.String("format", string(f)), zap.String("path", p))
		}
		return exportedMsg{format: f, path: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case capabilitiesMsg:
		m.keys.syncExports(m.opts.Registry)
		if msg.err != nil {
			m.notify(true, "Some export formats are unavailable: %v", msg.err)
		} else {
			m.notify(false, "Ready to export.")
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.notify(true, "%s export failed: %v", strings.ToUpper(string(msg.format)), msg.err)
		} else {
			m.notify(false, "Saved %s", msg.path)
		}
		return m, nil

	case catalogMsg:
		if msg.Err != nil {
			m.notify(true, "Checklist reload failed: %v", msg.Err)
		} else {
			if msg.Catalog.Title != "" {
				m.title = msg.Catalog.Title
			}
			m.setChecklist(model.Carry(m.checklist, msg.Catalog.Sections))
			m.notify(false, "Checklist reloaded.")
		}
		return m, waitForCatalog(m.opts.Updates)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, b := range m.keys.exports() {
		if key.Matches(msg, *b.binding) {
			m.notify(false, "Exporting %s…", strings.ToUpper(string(b.format)))
			return m, m.exportCmd(b.format)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.rows) - 1)
	case key.Matches(msg, m.keys.Toggle):
		if ev := m.toggleEvent(); ev != nil {
			m.apply(ev)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.apply(model.SetExpandedAllEvent{Expanded: true})
	case key.Matches(msg, m.keys.CollapseAll):
		m.apply(model.SetExpandedAllEvent{Expanded: false})
	case key.Matches(msg, m.keys.Reset):
		m.apply(model.ResetAllEvent{})
		m.notify(false, "All items unchecked.")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}
	return m, nil
}

// toggleEvent maps the row under the cursor to an event; subsection
// headings have none.
func (m Model) toggleEvent() model.Event {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	switch r.kind {
	case rowSection:
		return model.ToggleSectionEvent{SectionID: r.section.ID}
	case rowItem:
		return model.ToggleItemEvent{ItemID: r.item.ID, SectionID: r.section.ID, SubsectionID: r.sub.ID}
	}
	return nil
}

func (m *Model) apply(ev model.Event) {
	m.setChecklist(model.Apply(ev, m.checklist))
}

// setChecklist swaps in c and keeps the cursor on the same row, or on its
// section when the row was folded away.
func (m *Model) setChecklist(c model.Checklist) {
	var cur row
	hadRow := m.cursor >= 0 && m.cursor < len(m.rows)
	if hadRow {
		cur = m.rows[m.cursor]
	}
	m.checklist = c
	m.rows = flatten(c)
	if hadRow {
		if i := find(m.rows, cur); i >= 0 {
			m.cursor = i
		}
	}
	m.moveTo(m.cursor)
}

func (m *Model) moveTo(i int) {
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
	m.refresh()
}

func (m *Model) notify(isErr bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w - 4
	m.viewport.Width = max(w-4, 20)
	chrome := chromeLines
	if m.help.ShowAll {
		chrome += len(m.keys.FullHelp()[0]) - 1
	}
	m.viewport.Height = max(h-chrome, 3)
	m.refresh()
}

// refresh re-renders the rows and scrolls the cursor into view.
func (m *Model) refresh() {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = m.renderRow(r, i == m.cursor)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) renderRow(r row, selected bool) string {
	t := m.opts.Theme
	var line string
	switch r.kind {
	case rowSection:
		line = t.SectionLine(r.section, barWidth)
	case rowSubsection:
		line = t.SubsectionLine(r.sub, 1)
	default:
		indent := 1
		if r.sub.ID != "" {
			indent = 2
		}
		line = t.ItemLine(r.item, indent)
	}
	if selected {
		return t.Selected.Render(">") + " " + line
	}
	return "  " + line
}

func (m Model) View() string {
	t := m.opts.Theme
	lines := []string{t.Title.Render(m.title), t.Legend()}
	lines = append(lines, t.Summary(m.checklist, barWidth)...)
	lines = append(lines, "", m.viewport.View(), "")

	status := t.Muted.Render(m.status)
	if m.statusErr {
		status = t.Error.Render(m.status)
	}
	lines = append(lines, status, m.help.View(m.keys))
	return t.Panel(lines)
}

// Run starts the interactive checklist on the alternate screen and returns
// the checklist as it was when the user quit.
func Run(c model.Checklist, opts Options) (model.Checklist, error) {
	p := tea.NewProgram(New(c, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return c, err
	}
	if fm, ok := final.(Model); ok {
		return fm.checklist, nil
	}
	return c, nil
}
