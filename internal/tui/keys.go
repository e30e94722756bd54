package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/idilsaglam/costcheck/internal/export"
)

// KeyMap is the full set of bindings shown in the help bar.
type KeyMap struct {
	Up, Down               key.Binding
	Top, Bottom            key.Binding
	Toggle                 key.Binding
	ExpandAll, CollapseAll key.Binding
	Reset                  key.Binding

	ExportJSON, ExportPDF, ExportDOCX, ExportMarkdown key.Binding

	Help, Quit key.Binding
}

// DefaultKeyMap starts with every export binding disabled; they are
// enabled once the registry reports the format ready.
func DefaultKeyMap() KeyMap {
	k := KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),

		ExportJSON:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "json")),
		ExportPDF:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
		ExportDOCX:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "docx")),
		ExportMarkdown: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "markdown")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for _, b := range k.exports() {
		b.binding.SetEnabled(false)
	}
	return k
}

type exportBinding struct {
	format  export.Format
	binding *key.Binding
}

func (k *KeyMap) exports() []exportBinding {
	return []exportBinding{
		{export.JSON, &k.ExportJSON},
		{export.PDF, &k.ExportPDF},
		{export.DOCX, &k.ExportDOCX},
		{export.Markdown, &k.ExportMarkdown},
	}
}

// syncExports enables each export binding whose format is ready.
func (k *KeyMap) syncExports(reg *export.Registry) {
	for _, b := range k.exports() {
		b.binding.SetEnabled(reg != nil && reg.Ready(b.format))
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ExportJSON, k.ExportPDF, k.ExportDOCX, k.ExportMarkdown, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.ExpandAll, k.CollapseAll, k.Reset},
		{k.ExportJSON, k.ExportPDF, k.ExportDOCX, k.ExportMarkdown},
		{k.Help, k.Quit},
	}
}
