package model

// Item is a single checklist entry.
// Items are created unchecked and only ever change by toggling.
type Item struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"-"`
}

// Subsection groups items one level below a Section.
type Subsection struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

// Section is a top-level checklist category. It holds direct items,
// subsections, or (tolerated) both.
type Section struct {
	ID          int          `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Icon        string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Expanded    bool         `json:"-" yaml:"expanded,omitempty"` // presentation only, never exported
	Items       []Item       `json:"items,omitempty" yaml:"items,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Checklist is the root aggregate. Operations return a new value and
// never write through to the receiver's backing arrays.
type Checklist []Section

// Address locates an item inside a Checklist.
// SubsectionID is empty for items held directly by the section.
type Address struct {
	ItemID       string
	SectionID    int
	SubsectionID string
}
