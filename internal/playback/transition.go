package playback

import (
	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/navigation"
)

// Transition is the pure state transition function: it maps (state, intent)
// to a new state. It never panics and never produces side effects; unknown
// or inapplicable intents return the state unchanged.
func Transition(st State, intent Intent) State {
	switch in := intent.(type) {
	case Play:
		st.IsPlaying = true

	case Pause:
		st.IsPlaying = false

	case RequestSeek:
		st = applySeek(st, in.Time, in.Source)

	case ClearPendingSeek:
		if st.PendingSeek != nil {
			st.PendingSeek = nil
			st.SyncState = domain.SyncSynced
		}

	case ReportTimeUpdate:
		if in.Time >= 0 {
			st.CurrentTime = in.Time
		}

	case ReportDuration:
		if in.Duration >= 0 {
			st.Duration = in.Duration
		}

	case ReportPlayStateChanged:
		st.IsPlaying = in.IsPlaying

	case ReportEnded:
		st.IsPlaying = false
		st.IsPlayingHighlights = false
		st.CurrentSegmentIndex = -1
		st.SyncState = domain.SyncIdle

	case SetSyncState:
		st.SyncState = in.SyncState
		// a resource-reported synced means nothing is in flight anymore
		if in.SyncState == domain.SyncSynced {
			st.PendingSeek = nil
		}

	case StartHighlightSequence:
		segments := DeriveSegments(in.Sentences, in.Gap)
		if len(segments) == 0 {
			return st
		}
		st.HighlightSegments = segments
		st.CurrentSegmentIndex = 0
		st.IsPlayingHighlights = true
		st.IsPlaying = true
		st = applySeek(st, segments[0].Start, domain.SeekSourceHighlight)

	case AdvanceToSegment:
		if !st.IsPlayingHighlights {
			return st
		}
		if in.Index < 0 || in.Index >= len(st.HighlightSegments) {
			return st
		}
		st = applySeek(st, in.StartTime, domain.SeekSourceHighlight)
		st.CurrentSegmentIndex = in.Index

	case StopHighlightPlayback:
		st.IsPlaying = false
		st.IsPlayingHighlights = false
		st.CurrentSegmentIndex = -1
		st.SyncState = domain.SyncIdle

	case SetVolume:
		st.Volume = clampVolume(in.Volume)

	case ToggleMute:
		st.IsMuted = !st.IsMuted

	case ReportError:
		st.Error = in.Message

	case ClearError:
		st.Error = ""

	case SetLoading:
		st.Loading = in.Loading

	case RecomputeNavigation:
		st.Navigation = navigation.Resolve(in.Sentences, st.CurrentTime)

	case NavigatePrevious:
		target := navigation.FindPrevious(in.Sentences, st.CurrentTime)
		if target == nil {
			return st
		}
		st = applySeek(st, target.StartTime, domain.SeekSourceUser)
		st.Navigation = navigation.Resolve(in.Sentences, target.StartTime)

	case NavigateNext:
		target := navigation.FindNext(in.Sentences, st.CurrentTime)
		if target == nil {
			return st
		}
		st = applySeek(st, target.StartTime, domain.SeekSourceUser)
		st.Navigation = navigation.Resolve(in.Sentences, target.StartTime)
	}

	return st
}

// applySeek records a seek request. The new target overwrites any previous
// one: there is no queue of pending seeks, only the most recent request is
// honored.
func applySeek(st State, t float64, source domain.SeekSource) State {
	if t < 0 {
		return st
	}

	seek := t
	st.CurrentTime = t
	st.PendingSeek = &seek
	st.SyncState = domain.SyncSeeking
	st.LastSeekSource = source

	return st
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
