package playback

import (
	"log/slog"
	"sync"
)

// Subscriber observes every applied transition. Subscribers run outside the
// store lock and may dispatch further intents; those are queued and
// processed after the current one, preserving dispatch order.
type Subscriber func(prev, next State)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns the playback state of one session. It is the single writer:
// all mutation goes through Dispatch, which applies the pure Transition
// function to intents strictly in the order they were issued.
type Store struct {
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	queue       []Intent
	draining    bool
	subscribers []subscription
	nextSubId   int
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger: logger,
		state:  NewState(),
	}
}

// State returns a snapshot of the current state. Slices inside the snapshot
// are shared and must be treated as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Subscribe registers fn to run after every transition and returns a func
// that removes exactly this registration.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubId
	s.nextSubId++
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch queues the intent and, unless a drain is already in progress,
// processes the queue to empty. Re-entrant dispatches from subscribers
// enqueue and return, so intents are applied one at a time in FIFO order
// with no recursion.
func (s *Store) Dispatch(intent Intent) {
	s.mu.Lock()
	s.queue = append(s.queue, intent)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		prev := s.state
		s.state = Transition(prev, next)
		applied := s.state

		subs := make([]subscription, len(s.subscribers))
		copy(subs, s.subscribers)
		s.mu.Unlock()

		s.logger.Debug("playback.store.Dispatch",
			"intent", intentName(next),
			"is_playing", applied.IsPlaying,
			"current_time", applied.CurrentTime,
			"sync_state", applied.SyncState.String(),
		)

		for _, sub := range subs {
			sub.fn(prev, applied)
		}

		s.mu.Lock()
	}

	s.draining = false
	s.mu.Unlock()
}

func intentName(intent Intent) string {
	switch intent.(type) {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case RequestSeek:
		return "request_seek"
	case ClearPendingSeek:
		return "clear_pending_seek"
	case ReportTimeUpdate:
		return "report_time_update"
	case ReportDuration:
		return "report_duration"
	case ReportPlayStateChanged:
		return "report_play_state_changed"
	case ReportEnded:
		return "report_ended"
	case SetSyncState:
		return "set_sync_state"
	case StartHighlightSequence:
		return "start_highlight_sequence"
	case AdvanceToSegment:
		return "advance_to_segment"
	case StopHighlightPlayback:
		return "stop_highlight_playback"
	case SetVolume:
		return "set_volume"
	case ToggleMute:
		return "toggle_mute"
	case ReportError:
		return "report_error"
	case ClearError:
		return "clear_error"
	case SetLoading:
		return "set_loading"
	case RecomputeNavigation:
		return "recompute_navigation"
	case NavigatePrevious:
		return "navigate_previous"
	case NavigateNext:
		return "navigate_next"
	default:
		return "unknown"
	}
}
