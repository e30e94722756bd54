package model

// Band is one of the six fixed score bands.
type Band int

const (
	NeedsAttention Band = iota
	GettingStarted
	Fair
	Good
	VeryGood
	Excellent
)

// Rating describes the band a progress percentage falls into.
type Rating struct {
	Band        Band
	Label       string
	Description string
	Min, Max    int
}

// bands is ordered from highest threshold to lowest; Rate walks it top-down.
var bands = []Rating{
	{Excellent, "Excellent", "Your AWS environment is highly optimized. Keep maintaining these practices!", 90, 100},
	{VeryGood, "Very Good", "Your cost optimization efforts are paying off. Look at remaining items for additional savings.", 75, 89},
	{Good, "Good", "You've made good progress. Several optimization opportunities still remain.", 60, 74},
	{Fair, "Fair", "You've completed some key optimizations. Focus on high-impact items next.", 40, 59},
	{GettingStarted, "Getting Started", "You're on the right path. Prioritize the easier wins first.", 20, 39},
	{NeedsAttention, "Needs Attention", "Begin your optimization journey with quick wins for immediate savings.", 0, 19},
}

// Rate maps a progress percentage to its band. Values outside [0,100]
// are clamped.
func Rate(progress int) Rating {
	for _, b := range bands {
		if progress >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Bands lists every band from best to worst, for legends.
func Bands() []Rating {
	out := make([]Rating, len(bands))
	copy(out, bands)
	return out
}

func (b Band) String() string {
	for _, r := range bands {
		if r.Band == b {
			return r.Label
		}
	}
	return "unknown"
}
