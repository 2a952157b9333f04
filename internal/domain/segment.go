package domain

// Segment is a time range of the virtual timeline, derived from a selected
// sentence. Invariant: Start < End.
type Segment struct {
	Id    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t falls inside the segment bounds, inclusive.
func (s Segment) Contains(t float64) bool {
	return s.Start <= t && t <= s.End
}
