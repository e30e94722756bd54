package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Checklist {
	return Checklist{
		{
			ID: 1, Title: "Billing", Expanded: true,
			Items: []Item{
				{ID: "1-1", Text: "Cost Explorer"},
				{ID: "1-2", Text: "Budgets", Checked: true},
			},
		},
		{
			ID: 2, Title: "Compute",
			Subsections: []Subsection{
				{ID: "2-1", Title: "EC2", Items: []Item{
					{ID: "2-1-1", Text: "Idle instances"},
					{ID: "2-1-2", Text: "Right-size"},
				}},
				{ID: "2-2", Title: "Lambda", Items: []Item{
					{ID: "2-2-1", Text: "Memory"},
				}},
			},
		},
		{ID: 3, Title: "Empty"},
	}
}

func checkedIDs(c Checklist) []string {
	var ids []string
	for _, it := range c.Items() {
		if it.Checked {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func TestPercent(t *testing.T) {
	tests := []struct {
		checked, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{2, 5, 40},
		{1, 8, 13}, // 12.5 rounds up
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{43, 86, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.checked, tt.total), "%d/%d", tt.checked, tt.total)
	}
}

func TestProgressCountsNestedItems(t *testing.T) {
	c := sample()
	checked, total := c.Counts()
	assert.Equal(t, 1, checked)
	assert.Equal(t, 5, total)
	assert.Equal(t, 20, Progress(c))

	assert.Equal(t, 50, SectionProgress(c[0]))
	assert.Equal(t, 0, SectionProgress(c[1]))
	assert.Equal(t, 0, SectionProgress(c[2]), "empty section must not divide by zero")
	assert.Equal(t, 0, Progress(nil))
}

func TestSectionWithSubsectionScenario(t *testing.T) {
	sec := Section{ID: 9, Title: "Storage", Subsections: []Subsection{{
		ID: "9-1", Title: "S3",
		Items: []Item{
			{ID: "a", Checked: true}, {ID: "b", Checked: true},
			{ID: "c"}, {ID: "d"}, {ID: "e"},
		},
	}}}
	p := SectionProgress(sec)
	assert.Equal(t, 40, p)
	assert.Equal(t, "Fair", Rate(p).Label)
}

func TestToggleItemIsItsOwnInverse(t *testing.T) {
	c := sample()
	once := c.ToggleItem("2-1-2", 2, "2-1")
	it, ok := once.Item("2-1-2")
	require.True(t, ok)
	assert.True(t, it.Checked)
	assert.Equal(t, []string{"1-2", "2-1-2"}, checkedIDs(once))

	twice := once.ToggleItem("2-1-2", 2, "2-1")
	if diff := cmp.Diff(c, twice); diff != "" {
		t.Fatalf("double toggle changed checklist (-want +got):\n%s", diff)
	}
}

func TestToggleItemDoesNotMutateReceiver(t *testing.T) {
	c := sample()
	before := sample()
	_ = c.ToggleItem("1-1", 1, "")
	_ = c.ToggleItem("2-2-1", 2, "2-2")
	_ = c.ResetAll()
	_ = c.ToggleSectionExpanded(2)
	if diff := cmp.Diff(before, c); diff != "" {
		t.Fatalf("receiver mutated (-want +got):\n%s", diff)
	}
}

func TestToggleUnknownAddressIsNoop(t *testing.T) {
	c := sample()
	cases := []Address{
		{ItemID: "nope", SectionID: 1},
		{ItemID: "1-1", SectionID: 42},
		{ItemID: "2-1-1", SectionID: 2, SubsectionID: "2-9"},
		{ItemID: "2-1-1", SectionID: 2}, // item lives in a subsection
		{ItemID: "1-1", SectionID: 1, SubsectionID: "2-1"},
	}
	for _, a := range cases {
		got := c.ToggleItem(a.ItemID, a.SectionID, a.SubsectionID)
		assert.Empty(t, cmp.Diff(c, got), "address %+v", a)
	}
	assert.Empty(t, cmp.Diff(c, c.Toggle("missing")))
}

func TestToggleByID(t *testing.T) {
	c := sample().Toggle("2-2-1")
	assert.Equal(t, []string{"1-2", "2-2-1"}, checkedIDs(c))

	addr, ok := c.Locate("2-2-1")
	require.True(t, ok)
	assert.Equal(t, Address{ItemID: "2-2-1", SectionID: 2, SubsectionID: "2-2"}, addr)

	addr, ok = c.Locate("1-1")
	require.True(t, ok)
	assert.Equal(t, Address{ItemID: "1-1", SectionID: 1}, addr)
}

func TestResetAllIsIdempotent(t *testing.T) {
	c := sample().Toggle("2-1-1").Toggle("1-1")
	once := c.ResetAll()
	twice := once.ResetAll()

	assert.Empty(t, cmp.Diff(once, twice))
	assert.Equal(t, 0, Progress(once))
	assert.Empty(t, checkedIDs(once))
	assert.True(t, once[0].Expanded, "reset keeps expanded flags")
	assert.Nil(t, once[2].Items)
}

func TestToggleSectionExpandedLeavesScoreAlone(t *testing.T) {
	c := sample()
	got := c.ToggleSectionExpanded(2)
	assert.True(t, got[1].Expanded)
	assert.Equal(t, Progress(c), Progress(got))
	assert.False(t, got.ToggleSectionExpanded(2)[1].Expanded)
	assert.Empty(t, cmp.Diff(c, c.ToggleSectionExpanded(99)))
}

func TestApply(t *testing.T) {
	c := sample()
	c = Apply(ToggleItemEvent{ItemID: "1-1", SectionID: 1}, c)
	c = Apply(ToggleSectionEvent{SectionID: 3}, c)
	assert.Equal(t, []string{"1-1", "1-2"}, checkedIDs(c))
	assert.True(t, c[2].Expanded)

	c = Apply(SetExpandedAllEvent{Expanded: false}, c)
	for _, sec := range c {
		assert.False(t, sec.Expanded)
	}

	c = Apply(ResetAllEvent{}, c)
	assert.Zero(t, Progress(c))
	assert.Empty(t, cmp.Diff(c, Apply(nil, c)))
}

func TestCarry(t *testing.T) {
	prev := sample().Toggle("2-1-1").ToggleSectionExpanded(2)
	next := Checklist{
		{ID: 2, Title: "Compute v2", Items: []Item{
			{ID: "2-1-1", Text: "Idle"},
			{ID: "2-9", Text: "New"},
		}},
		{ID: 1, Title: "Billing", Items: []Item{{ID: "1-2", Text: "Budgets"}}},
		{ID: 7, Title: "Fresh"},
	}
	got := Carry(prev, next)
	assert.Equal(t, []string{"2-1-1", "1-2"}, checkedIDs(got))
	assert.True(t, got[0].Expanded)
	assert.True(t, got[1].Expanded)
	assert.False(t, got[2].Expanded)
	assert.False(t, next[0].Items[0].Checked, "Carry must not mutate its input")
}

func TestRateIsATotalPartition(t *testing.T) {
	want := map[string][2]int{
		"Needs Attention": {0, 19},
		"Getting Started": {20, 39},
		"Fair":            {40, 59},
		"Good":            {60, 74},
		"Very Good":       {75, 89},
		"Excellent":       {90, 100},
	}
	seen := make(map[string]int)
	for p := 0; p <= 100; p++ {
		r := Rate(p)
		rng, ok := want[r.Label]
		require.True(t, ok, "unexpected label %q", r.Label)
		assert.GreaterOrEqual(t, p, rng[0], r.Label)
		assert.LessOrEqual(t, p, rng[1], r.Label)
		assert.NotEmpty(t, r.Description)
		seen[r.Label]++
	}
	assert.Len(t, seen, 6)
	assert.Equal(t, 20, seen["Needs Attention"])
	assert.Equal(t, 11, seen["Excellent"])

	assert.Equal(t, NeedsAttention, Rate(-5).Band)
	assert.Equal(t, Excellent, Rate(140).Band)
	assert.Equal(t, "Very Good", VeryGood.String())
}

func TestBandsLegend(t *testing.T) {
	b := Bands()
	require.Len(t, b, 6)
	assert.Equal(t, Excellent, b[0].Band)
	assert.Equal(t, NeedsAttention, b[5].Band)
	for i := 1; i < len(b); i++ {
		assert.Equal(t, b[i].Max+1, b[i-1].Min, "bands must be contiguous")
	}
}

func TestToneOf(t *testing.T) {
	assert.Equal(t, ToneLow, ToneOf(0))
	assert.Equal(t, ToneLow, ToneOf(29))
	assert.Equal(t, ToneMedium, ToneOf(30))
	assert.Equal(t, ToneMedium, ToneOf(69))
	assert.Equal(t, ToneHigh, ToneOf(70))
}
