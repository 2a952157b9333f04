package playback

import "github.com/snipcast/server/internal/domain"

// Intent is a described request to change playback state. Intents are the
// sole mutation surface: callers dispatch them to the store and never write
// State directly.
type Intent interface {
	isIntent()
}

type Play struct{}

type Pause struct{}

// RequestSeek asks the synchronizer to move the media resource to Time.
// Negative targets are ignored.
type RequestSeek struct {
	Time   float64
	Source domain.SeekSource
}

// ClearPendingSeek marks the outstanding seek as applied to the resource.
type ClearPendingSeek struct{}

// ReportTimeUpdate carries the resource's current position. It never touches
// the pending seek.
type ReportTimeUpdate struct {
	Time float64
}

// ReportDuration carries the resource's duration once metadata is known.
type ReportDuration struct {
	Duration float64
}

// ReportPlayStateChanged mirrors the resource's actual play/pause state. The
// resource is authoritative, so this always wins over local intent.
type ReportPlayStateChanged struct {
	IsPlaying bool
}

// ReportEnded signals that the resource reached the end of the media.
type ReportEnded struct{}

// SetSyncState forces the sync state, covering seeks the resource initiates
// on its own. Forcing synced also clears any pending seek.
type SetSyncState struct {
	SyncState domain.SyncState
}

// StartHighlightSequence derives highlight segments from the selected
// sentences and begins playing them as a virtual timeline. A no-op when no
// sentence is selected. Gap is the segment spacing in seconds, zero or
// negative meaning DefaultSegmentGap.
type StartHighlightSequence struct {
	Sentences []domain.Sentence
	Gap       float64
}

// AdvanceToSegment moves highlight playback to the segment at Index, seeking
// to StartTime. A no-op when highlight playback is inactive or Index is out
// of range.
type AdvanceToSegment struct {
	Index     int
	StartTime float64
}

// StopHighlightPlayback leaves highlight mode. Segments are retained for
// display.
type StopHighlightPlayback struct{}

type SetVolume struct {
	Volume float64
}

type ToggleMute struct{}

type ReportError struct {
	Message string
}

type ClearError struct{}

type SetLoading struct {
	Loading bool
}

// RecomputeNavigation re-derives navigation state against the current
// playback position.
type RecomputeNavigation struct {
	Sentences []domain.Sentence
}

// NavigatePrevious seeks to the previous addressable sentence, if any.
type NavigatePrevious struct {
	Sentences []domain.Sentence
}

// NavigateNext seeks to the next addressable sentence, if any.
type NavigateNext struct {
	Sentences []domain.Sentence
}

func (Play) isIntent()                   {}
func (Pause) isIntent()                  {}
func (RequestSeek) isIntent()            {}
func (ClearPendingSeek) isIntent()       {}
func (ReportTimeUpdate) isIntent()       {}
func (ReportDuration) isIntent()         {}
func (ReportPlayStateChanged) isIntent() {}
func (ReportEnded) isIntent()            {}
func (SetSyncState) isIntent()           {}
func (StartHighlightSequence) isIntent() {}
func (AdvanceToSegment) isIntent()       {}
func (StopHighlightPlayback) isIntent()  {}
func (SetVolume) isIntent()              {}
func (ToggleMute) isIntent()             {}
func (ReportError) isIntent()            {}
func (ClearError) isIntent()             {}
func (SetLoading) isIntent()             {}
func (RecomputeNavigation) isIntent()    {}
func (NavigatePrevious) isIntent()       {}
func (NavigateNext) isIntent()           {}
