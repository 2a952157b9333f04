package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipcast/server/internal/domain"
)

func testSentences() []domain.Sentence {
	return []domain.Sentence{
		{Id: "a", StartTime: 0, EndTime: 3, IsSelected: true},
		{Id: "b", StartTime: 3, EndTime: 6, IsSelected: false},
		{Id: "c", StartTime: 6, EndTime: 9, IsSelected: true},
	}
}

func TestTransitionPlayPause(t *testing.T) {
	st := NewState()

	st = Transition(st, Play{})
	assert.True(t, st.IsPlaying)

	st = Transition(st, Pause{})
	assert.False(t, st.IsPlaying)
}

func TestTransitionRequestSeek(t *testing.T) {
	st := NewState()

	st = Transition(st, RequestSeek{Time: 12.5, Source: domain.SeekSourceTimeline})
	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 12.5, *st.PendingSeek)
	assert.Equal(t, 12.5, st.CurrentTime)
	assert.Equal(t, domain.SyncSeeking, st.SyncState)
	assert.Equal(t, domain.SeekSourceTimeline, st.LastSeekSource)
}

func TestTransitionRequestSeekNegativeIsNoop(t *testing.T) {
	st := NewState()

	next := Transition(st, RequestSeek{Time: -1, Source: domain.SeekSourceUser})
	assert.Nil(t, next.PendingSeek)
	assert.Equal(t, st.CurrentTime, next.CurrentTime)
	assert.Equal(t, st.SyncState, next.SyncState)
}

func TestTransitionRequestSeekIdempotent(t *testing.T) {
	st := NewState()

	once := Transition(st, RequestSeek{Time: 4, Source: domain.SeekSourceUser})
	twice := Transition(once, RequestSeek{Time: 4, Source: domain.SeekSourceUser})

	require.NotNil(t, twice.PendingSeek)
	assert.Equal(t, *once.PendingSeek, *twice.PendingSeek)
	assert.Equal(t, once.CurrentTime, twice.CurrentTime)
	assert.Equal(t, once.SyncState, twice.SyncState)
	assert.Equal(t, once.LastSeekSource, twice.LastSeekSource)
}

func TestTransitionNewSeekSupersedesPrevious(t *testing.T) {
	st := NewState()

	st = Transition(st, RequestSeek{Time: 4, Source: domain.SeekSourceUser})
	st = Transition(st, RequestSeek{Time: 8, Source: domain.SeekSourceHighlight})

	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 8.0, *st.PendingSeek)
	assert.Equal(t, domain.SeekSourceHighlight, st.LastSeekSource)
}

func TestTransitionClearPendingSeek(t *testing.T) {
	st := NewState()

	st = Transition(st, RequestSeek{Time: 4, Source: domain.SeekSourceUser})
	st = Transition(st, ClearPendingSeek{})

	assert.Nil(t, st.PendingSeek)
	assert.Equal(t, domain.SyncSynced, st.SyncState)

	// without an outstanding seek it is a no-op
	st.SyncState = domain.SyncIdle
	st = Transition(st, ClearPendingSeek{})
	assert.Equal(t, domain.SyncIdle, st.SyncState)
}

func TestTransitionReportTimeUpdateKeepsPendingSeek(t *testing.T) {
	st := NewState()

	st = Transition(st, RequestSeek{Time: 4, Source: domain.SeekSourceUser})
	st = Transition(st, ReportTimeUpdate{Time: 1.5})

	assert.Equal(t, 1.5, st.CurrentTime)
	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 4.0, *st.PendingSeek)
}

func TestTransitionReportPlayStateChangedWins(t *testing.T) {
	st := NewState()

	st = Transition(st, Play{})
	st = Transition(st, ReportPlayStateChanged{IsPlaying: false})
	assert.False(t, st.IsPlaying)
}

func TestTransitionReportEnded(t *testing.T) {
	st := NewState()

	st = Transition(st, StartHighlightSequence{Sentences: testSentences()})
	st = Transition(st, ReportEnded{})

	assert.False(t, st.IsPlaying)
	assert.False(t, st.IsPlayingHighlights)
	assert.Equal(t, -1, st.CurrentSegmentIndex)
	assert.Equal(t, domain.SyncIdle, st.SyncState)
}

func TestTransitionStartHighlightSequence(t *testing.T) {
	st := NewState()

	st = Transition(st, StartHighlightSequence{Sentences: testSentences()})

	require.Len(t, st.HighlightSegments, 2)
	assert.Equal(t, domain.Segment{Id: "a", Start: 0, End: 3}, st.HighlightSegments[0])
	assert.Equal(t, domain.Segment{Id: "c", Start: 6, End: 9}, st.HighlightSegments[1])
	assert.Equal(t, 0, st.CurrentSegmentIndex)
	assert.True(t, st.IsPlayingHighlights)
	assert.True(t, st.IsPlaying)
	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 0.0, *st.PendingSeek)
	assert.Equal(t, domain.SeekSourceHighlight, st.LastSeekSource)
}

func TestTransitionStartHighlightSequenceNoSelection(t *testing.T) {
	st := NewState()

	next := Transition(st, StartHighlightSequence{Sentences: []domain.Sentence{
		{Id: "a", StartTime: 0, EndTime: 3},
	}})

	assert.Equal(t, st, next)
}

func TestTransitionAdvanceToSegment(t *testing.T) {
	st := NewState()
	st = Transition(st, StartHighlightSequence{Sentences: testSentences()})

	st = Transition(st, AdvanceToSegment{Index: 1, StartTime: 6})
	assert.Equal(t, 1, st.CurrentSegmentIndex)
	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 6.0, *st.PendingSeek)
}

func TestTransitionAdvanceToSegmentOutOfRange(t *testing.T) {
	st := NewState()
	st = Transition(st, StartHighlightSequence{Sentences: testSentences()})

	next := Transition(st, AdvanceToSegment{Index: 5, StartTime: 6})
	assert.Equal(t, st.CurrentSegmentIndex, next.CurrentSegmentIndex)

	next = Transition(st, AdvanceToSegment{Index: -1, StartTime: 6})
	assert.Equal(t, st.CurrentSegmentIndex, next.CurrentSegmentIndex)
}

func TestTransitionAdvanceOutsideHighlightModeIsNoop(t *testing.T) {
	st := NewState()

	next := Transition(st, AdvanceToSegment{Index: 0, StartTime: 0})
	assert.Equal(t, -1, next.CurrentSegmentIndex)
	assert.Nil(t, next.PendingSeek)
}

func TestTransitionStopHighlightPlaybackRetainsSegments(t *testing.T) {
	st := NewState()
	st = Transition(st, StartHighlightSequence{Sentences: testSentences()})

	st = Transition(st, StopHighlightPlayback{})
	assert.False(t, st.IsPlaying)
	assert.False(t, st.IsPlayingHighlights)
	assert.Equal(t, -1, st.CurrentSegmentIndex)
	assert.Len(t, st.HighlightSegments, 2)
}

func TestTransitionSetVolumeClamps(t *testing.T) {
	st := NewState()

	st = Transition(st, SetVolume{Volume: 1.7})
	assert.Equal(t, 1.0, st.Volume)

	st = Transition(st, SetVolume{Volume: -0.3})
	assert.Equal(t, 0.0, st.Volume)

	st = Transition(st, SetVolume{Volume: 0.25})
	assert.Equal(t, 0.25, st.Volume)
}

func TestTransitionToggleMute(t *testing.T) {
	st := NewState()

	st = Transition(st, ToggleMute{})
	assert.True(t, st.IsMuted)
	st = Transition(st, ToggleMute{})
	assert.False(t, st.IsMuted)
}

func TestTransitionErrorLifecycle(t *testing.T) {
	st := NewState()

	st = Transition(st, ReportError{Message: "decode failure"})
	assert.True(t, st.HasError())
	assert.Equal(t, "decode failure", st.Error)

	st = Transition(st, ClearError{})
	assert.False(t, st.HasError())
}

func TestTransitionSetSyncStateSyncedClearsPendingSeek(t *testing.T) {
	st := NewState()

	st = Transition(st, RequestSeek{Time: 4, Source: domain.SeekSourceUser})
	st = Transition(st, SetSyncState{SyncState: domain.SyncSynced})

	assert.Nil(t, st.PendingSeek)
	assert.Equal(t, domain.SyncSynced, st.SyncState)
}

func TestTransitionNavigateNext(t *testing.T) {
	sentences := testSentences()
	st := NewState()
	st = Transition(st, ReportTimeUpdate{Time: 1}) // inside sentence a

	st = Transition(st, NavigateNext{Sentences: sentences})

	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 6.0, *st.PendingSeek)
	assert.Equal(t, domain.SeekSourceUser, st.LastSeekSource)
	assert.True(t, st.Navigation.CanPrev)
	assert.False(t, st.Navigation.CanNext)
}

func TestTransitionNavigateNextWithoutTargetIsNoop(t *testing.T) {
	sentences := testSentences()
	st := NewState()
	st = Transition(st, ReportTimeUpdate{Time: 7}) // inside c, the last selected

	next := Transition(st, NavigateNext{Sentences: sentences})
	assert.Nil(t, next.PendingSeek)
	assert.Equal(t, st.CurrentTime, next.CurrentTime)
}

func TestTransitionNavigatePrevious(t *testing.T) {
	sentences := testSentences()
	st := NewState()
	st = Transition(st, ReportTimeUpdate{Time: 7}) // inside sentence c

	st = Transition(st, NavigatePrevious{Sentences: sentences})

	require.NotNil(t, st.PendingSeek)
	assert.Equal(t, 0.0, *st.PendingSeek)
	assert.False(t, st.Navigation.CanPrev)
	assert.True(t, st.Navigation.CanNext)
}

func TestTransitionRecomputeNavigation(t *testing.T) {
	sentences := testSentences()
	st := NewState()
	st = Transition(st, ReportTimeUpdate{Time: 4.5}) // between segments

	st = Transition(st, RecomputeNavigation{Sentences: sentences})

	assert.Equal(t, -1, st.Navigation.CurrentSelectedIndex)
	assert.True(t, st.Navigation.CanPrev)
	assert.True(t, st.Navigation.CanNext)
	assert.Equal(t, []int{0, 2}, st.Navigation.SelectedIndices)
}

func TestTransitionUnknownIntentReturnsStateUnchanged(t *testing.T) {
	st := NewState()
	st = Transition(st, Play{})

	next := Transition(st, unknownIntent{})
	assert.Equal(t, st, next)
}

type unknownIntent struct{}

func (unknownIntent) isIntent() {}
