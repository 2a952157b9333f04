package domain

// SyncState tracks whether playback state and the media resource agree.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncSeeking
	SyncSynced
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncSeeking:
		return "seeking"
	case SyncSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// SeekSource records the provenance of the last requested seek.
type SeekSource int

const (
	SeekSourceUser SeekSource = iota
	SeekSourceHighlight
	SeekSourceTimestamp
	SeekSourceTimeline
)

func (s SeekSource) String() string {
	switch s {
	case SeekSourceUser:
		return "user"
	case SeekSourceHighlight:
		return "highlight"
	case SeekSourceTimestamp:
		return "timestamp"
	case SeekSourceTimeline:
		return "timeline"
	default:
		return "unknown"
	}
}

// ParseSeekSource maps a wire-level source name to a SeekSource, falling
// back to user for unknown names.
func ParseSeekSource(s string) SeekSource {
	switch s {
	case "highlight":
		return SeekSourceHighlight
	case "timestamp":
		return SeekSourceTimestamp
	case "timeline":
		return SeekSourceTimeline
	default:
		return SeekSourceUser
	}
}

// NavigationState is the derived output of the navigation resolver.
// SelectedIndices holds the positions of selected sentences within the
// original sentence sequence, ordered by start time.
type NavigationState struct {
	SelectedIndices      []int `json:"selected_indices"`
	CanPrev              bool  `json:"can_prev"`
	CanNext              bool  `json:"can_next"`
	CurrentSelectedIndex int   `json:"current_selected_index"`
}
