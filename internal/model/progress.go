package model

// Counts returns how many of the section's items are checked and how many
// there are in total, subsections included.
func (s Section) Counts() (checked, total int) {
	for _, it := range s.AllItems() {
		total++
		if it.Checked {
			checked++
		}
	}
	return
}

// Counts aggregates over every section.
func (c Checklist) Counts() (checked, total int) {
	for _, sec := range c {
		ch, t := sec.Counts()
		checked += ch
		total += t
	}
	return
}

// Percent is round(100*checked/total) with halves rounded up, or 0 when
// total is 0.
func Percent(checked, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*checked + total) / (2 * total)
}

// Progress is the overall completion percentage of the checklist.
func Progress(c Checklist) int {
	return Percent(c.Counts())
}

// SectionProgress is the completion percentage of one section.
func SectionProgress(s Section) int {
	return Percent(s.Counts())
}

// Tone classifies a percentage for colouring bars and rating text.
type Tone int

const (
	ToneLow Tone = iota
	ToneMedium
	ToneHigh
)

// ToneOf maps <30 to low, <70 to medium and the rest to high.
func ToneOf(progress int) Tone {
	switch {
	case progress < 30:
		return ToneLow
	case progress < 70:
		return ToneMedium
	default:
		return ToneHigh
	}
}
