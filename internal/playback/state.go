// Package playback holds the playback state machine: a pure transition
// function over intents, the single-writer store that applies it, and the
// segment transition monitor that advances the virtual timeline.
package playback

import "github.com/snipcast/server/internal/domain"

// State is the full playback and navigation state of one editing session.
// It is a value: the transition function returns a new State and never
// mutates its input.
type State struct {
	IsPlaying bool    `json:"is_playing"`
	IsMuted   bool    `json:"is_muted"`
	Volume    float64 `json:"volume"`

	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`

	// PendingSeek is the outstanding seek target not yet applied to the
	// media resource, nil when none.
	PendingSeek    *float64          `json:"pending_seek"`
	SyncState      domain.SyncState  `json:"sync_state"`
	LastSeekSource domain.SeekSource `json:"last_seek_source"`

	IsPlayingHighlights bool             `json:"is_playing_highlights"`
	HighlightSegments   []domain.Segment `json:"highlight_segments"`
	// CurrentSegmentIndex is -1 exactly when IsPlayingHighlights is false.
	CurrentSegmentIndex int `json:"current_segment_index"`

	Navigation domain.NavigationState `json:"navigation"`

	Loading bool   `json:"loading"`
	Error   string `json:"error"`
}

// NewState returns the safe defaults a session starts from.
func NewState() State {
	return State{
		Volume:              0.5,
		CurrentSegmentIndex: -1,
		Navigation:          domain.NavigationState{CurrentSelectedIndex: -1},
	}
}

// ActiveSegment returns the highlight segment playback is currently inside,
// or false when highlight playback is inactive.
func (s State) ActiveSegment() (domain.Segment, bool) {
	if !s.IsPlayingHighlights {
		return domain.Segment{}, false
	}
	if s.CurrentSegmentIndex < 0 || s.CurrentSegmentIndex >= len(s.HighlightSegments) {
		return domain.Segment{}, false
	}

	return s.HighlightSegments[s.CurrentSegmentIndex], true
}

// HasError reports whether a resource error is currently surfaced.
func (s State) HasError() bool {
	return s.Error != ""
}
