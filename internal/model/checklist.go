package model

// ToggleItem flips the checked state of the addressed item. An empty
// subsectionID addresses the section's direct items. Unknown addresses
// leave the checklist unchanged.
func (c Checklist) ToggleItem(itemID string, sectionID int, subsectionID string) Checklist {
	si := c.sectionIndex(sectionID)
	if si < 0 {
		return c
	}
	sec := c[si]

	if subsectionID == "" {
		items, ok := toggleIn(sec.Items, itemID)
		if !ok {
			return c
		}
		sec.Items = items
		return c.withSection(si, sec)
	}

	for j, sub := range sec.Subsections {
		if sub.ID != subsectionID {
			continue
		}
		items, ok := toggleIn(sub.Items, itemID)
		if !ok {
			return c
		}
		subs := make([]Subsection, len(sec.Subsections))
		copy(subs, sec.Subsections)
		subs[j].Items = items
		sec.Subsections = subs
		return c.withSection(si, sec)
	}
	return c
}

// Toggle flips an item found by id alone.
func (c Checklist) Toggle(itemID string) Checklist {
	addr, ok := c.Locate(itemID)
	if !ok {
		return c
	}
	return c.ToggleItem(addr.ItemID, addr.SectionID, addr.SubsectionID)
}

// ResetAll unchecks every item. Expanded flags are kept.
func (c Checklist) ResetAll() Checklist {
	out := make(Checklist, len(c))
	for i, sec := range c {
		sec.Items = uncheck(sec.Items)
		if sec.Subsections != nil {
			subs := make([]Subsection, len(sec.Subsections))
			for j, sub := range sec.Subsections {
				sub.Items = uncheck(sub.Items)
				subs[j] = sub
			}
			sec.Subsections = subs
		}
		out[i] = sec
	}
	return out
}

// ToggleSectionExpanded flips the presentation-only expanded flag.
func (c Checklist) ToggleSectionExpanded(sectionID int) Checklist {
	si := c.sectionIndex(sectionID)
	if si < 0 {
		return c
	}
	sec := c[si]
	sec.Expanded = !sec.Expanded
	return c.withSection(si, sec)
}

// SetExpandedAll expands or collapses every section.
func (c Checklist) SetExpandedAll(expanded bool) Checklist {
	out := make(Checklist, len(c))
	for i, sec := range c {
		sec.Expanded = expanded
		out[i] = sec
	}
	return out
}

// Locate returns the address of the item with the given id.
func (c Checklist) Locate(itemID string) (Address, bool) {
	for _, sec := range c {
		for _, it := range sec.Items {
			if it.ID == itemID {
				return Address{ItemID: itemID, SectionID: sec.ID}, true
			}
		}
		for _, sub := range sec.Subsections {
			for _, it := range sub.Items {
				if it.ID == itemID {
					return Address{ItemID: itemID, SectionID: sec.ID, SubsectionID: sub.ID}, true
				}
			}
		}
	}
	return Address{}, false
}

// Item returns the item with the given id.
func (c Checklist) Item(itemID string) (Item, bool) {
	for _, it := range c.Items() {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// Items lists every item in display order.
func (c Checklist) Items() []Item {
	var out []Item
	for _, sec := range c {
		out = append(out, sec.AllItems()...)
	}
	return out
}

// AllItems lists the section's direct items followed by its subsections' items.
func (s Section) AllItems() []Item {
	out := make([]Item, 0, len(s.Items))
	out = append(out, s.Items...)
	for _, sub := range s.Subsections {
		out = append(out, sub.Items...)
	}
	return out
}

// Carry copies checked state (by item id) and expanded state (by section
// id) from prev onto next. Items that only exist in next stay unchecked.
func Carry(prev, next Checklist) Checklist {
	checked := make(map[string]bool)
	for _, it := range prev.Items() {
		if it.Checked {
			checked[it.ID] = true
		}
	}
	expanded := make(map[int]bool, len(prev))
	for _, sec := range prev {
		expanded[sec.ID] = sec.Expanded
	}

	out := make(Checklist, len(next))
	for i, sec := range next {
		if e, ok := expanded[sec.ID]; ok {
			sec.Expanded = e
		}
		sec.Items = carryItems(sec.Items, checked)
		if sec.Subsections != nil {
			subs := make([]Subsection, len(sec.Subsections))
			for j, sub := range sec.Subsections {
				sub.Items = carryItems(sub.Items, checked)
				subs[j] = sub
			}
			sec.Subsections = subs
		}
		out[i] = sec
	}
	return out
}

func (c Checklist) sectionIndex(id int) int {
	for i, sec := range c {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

func (c Checklist) withSection(i int, sec Section) Checklist {
	out := make(Checklist, len(c))
	copy(out, c)
	out[i] = sec
	return out
}

func toggleIn(items []Item, id string) ([]Item, bool) {
	for i, it := range items {
		if it.ID != id {
			continue
		}
		out := make([]Item, len(items))
		copy(out, items)
		out[i].Checked = !it.Checked
		return out, true
	}
	return items, false
}

func uncheck(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		it.Checked = false
		out[i] = it
	}
	return out
}

func carryItems(items []Item, checked map[string]bool) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		it.Checked = checked[it.ID]
		out[i] = it
	}
	return out
}
