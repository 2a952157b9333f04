package domain

// Sentence is a timed transcript row as supplied by the transcript source.
// The engine only reads Id, StartTime, EndTime and IsSelected.
type Sentence struct {
	Id            string  `json:"id" redis:"id"`
	Text          string  `json:"text" redis:"text"`
	StartTime     float64 `json:"start_time" redis:"start_time"`
	EndTime       float64 `json:"end_time" redis:"end_time"`
	IsSelected    bool    `json:"is_selected" redis:"is_selected"`
	IsHighlighted bool    `json:"is_highlighted" redis:"is_highlighted"`
}

// Contains reports whether t falls inside the sentence bounds, inclusive.
func (s Sentence) Contains(t float64) bool {
	return s.StartTime <= t && t <= s.EndTime
}
