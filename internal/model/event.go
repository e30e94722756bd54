package model

// Event is a user action the checklist reacts to.
type Event interface {
	apply(Checklist) Checklist
}

// ToggleItemEvent flips one item.
type ToggleItemEvent Address

// ResetAllEvent unchecks everything.
type ResetAllEvent struct{}

// ToggleSectionEvent flips a section's expanded flag.
type ToggleSectionEvent struct {
	SectionID int
}

// SetExpandedAllEvent expands or collapses every section.
type SetExpandedAllEvent struct {
	Expanded bool
}

func (e ToggleItemEvent) apply(c Checklist) Checklist {
	return c.ToggleItem(e.ItemID, e.SectionID, e.SubsectionID)
}

func (ResetAllEvent) apply(c Checklist) Checklist { return c.ResetAll() }

func (e ToggleSectionEvent) apply(c Checklist) Checklist {
	return c.ToggleSectionExpanded(e.SectionID)
}

func (e SetExpandedAllEvent) apply(c Checklist) Checklist {
	return c.SetExpandedAll(e.Expanded)
}

// Apply is the checklist reducer: it returns the checklist that results
// from ev. A nil event returns c.
func Apply(ev Event, c Checklist) Checklist {
	if ev == nil {
		return c
	}
	return ev.apply(c)
}
