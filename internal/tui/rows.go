package tui

import "github.com/idilsaglam/costcheck/internal/model"

type rowKind int

const (
	rowSection rowKind = iota
	rowSubsection
	rowItem
)

// row is one selectable line of the flattened checklist.
type row struct {
	kind    rowKind
	section model.Section
	sub     model.Subsection // rowSubsection, and rowItem inside a subsection
	item    model.Item
}

// key identifies a row across rebuilds.
func (r row) key() string {
	switch r.kind {
	case rowItem:
		return "i:" + r.item.ID
	case rowSubsection:
		return "s:" + r.sub.ID
	}
	return ""
}

// flatten lists every section, and the contents of expanded ones.
func flatten(c model.Checklist) []row {
	var rows []row
	for _, sec := range c {
		rows = append(rows, row{kind: rowSection, section: sec})
		if !sec.Expanded {
			continue
		}
		for _, it := range sec.Items {
			rows = append(rows, row{kind: rowItem, section: sec, item: it})
		}
		for _, sub := range sec.Subsections {
			rows = append(rows, row{kind: rowSubsection, section: sec, sub: sub})
			for _, it := range sub.Items {
				rows = append(rows, row{kind: rowItem, section: sec, sub: sub, item: it})
			}
		}
	}
	return rows
}

// find returns the index of the row matching r, falling back to the row of
// r's section, then -1.
func find(rows []row, r row) int {
	fallback := -1
	for i, x := range rows {
		if x.section.ID != r.section.ID {
			continue
		}
		if x.kind == r.kind && x.key() == r.key() {
			return i
		}
		if x.kind == rowSection {
			fallback = i
		}
	}
	return fallback
}
