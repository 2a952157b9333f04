package mediasync

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/playback"
)

// DefaultThrottle is the minimum spacing between forwarded timeupdate
// reports. It prevents state-update storms at native event frequency while
// preserving responsiveness.
const DefaultThrottle = 100 * time.Millisecond

var (
	ErrAlreadyBound = errors.New("media resource already bound")
	ErrNotBound     = errors.New("no media resource bound")
)

// Config tunes the synchronizer. Zero values fall back to the defaults; Now
// defaults to time.Now and exists for tests.
type Config struct {
	Throttle time.Duration
	Now      func() time.Time
}

// Synchronizer reconciles playback state with one bound media resource.
// Forward: state changes are pushed to the resource. Reverse: native
// resource events are normalized into intents. The resource is
// authoritative for actual play/pause and seek completion.
type Synchronizer struct {
	store    *playback.Store
	logger   *slog.Logger
	throttle time.Duration
	now      func() time.Time

	mu             sync.Mutex
	res            Resource
	offs           []func()
	lastTimeUpdate time.Time

	unsubscribe func()
}

func New(store *playback.Store, cfg *Config, logger *slog.Logger) *Synchronizer {
	s := &Synchronizer{
		store:    store,
		logger:   logger,
		throttle: DefaultThrottle,
		now:      time.Now,
	}
	if cfg != nil {
		if cfg.Throttle > 0 {
			s.throttle = cfg.Throttle
		}
		if cfg.Now != nil {
			s.now = cfg.Now
		}
	}

	s.unsubscribe = store.Subscribe(s.onStateChange)

	return s
}

// Bind attaches the synchronizer to a resource: every native event gets
// exactly one listener, and the current state is pushed to the resource so
// a freshly bound element starts in agreement.
func (s *Synchronizer) Bind(res Resource) error {
	s.mu.Lock()
	if s.res != nil {
		s.mu.Unlock()
		return ErrAlreadyBound
	}
	s.res = res
	s.mu.Unlock()

	offs := []func(){
		res.On(EventTimeUpdate, s.onTimeUpdate),
		res.On(EventLoadedMetadata, func(Event) {
			s.store.Dispatch(playback.ReportDuration{Duration: res.Duration()})
		}),
		res.On(EventPlay, func(Event) {
			s.store.Dispatch(playback.ReportPlayStateChanged{IsPlaying: true})
		}),
		res.On(EventPause, func(Event) {
			s.store.Dispatch(playback.ReportPlayStateChanged{IsPlaying: false})
		}),
		res.On(EventEnded, func(Event) {
			s.store.Dispatch(playback.ReportEnded{})
		}),
		res.On(EventError, func(ev Event) {
			msg := ev.Message
			if msg == "" {
				msg = "media resource error"
			}
			s.store.Dispatch(playback.ReportError{Message: msg})
		}),
		res.On(EventLoadStart, func(Event) {
			s.store.Dispatch(playback.SetLoading{Loading: true})
		}),
		res.On(EventCanPlay, func(Event) {
			s.store.Dispatch(playback.SetLoading{Loading: false})
			s.store.Dispatch(playback.ClearError{})
		}),
		// covers seeks the resource initiates on its own, e.g. scrubbing
		res.On(EventSeeking, func(Event) {
			s.store.Dispatch(playback.ReportTimeUpdate{Time: res.CurrentTime()})
			s.store.Dispatch(playback.SetSyncState{SyncState: domain.SyncSeeking})
		}),
		res.On(EventSeeked, func(Event) {
			s.store.Dispatch(playback.ReportTimeUpdate{Time: res.CurrentTime()})
			s.store.Dispatch(playback.SetSyncState{SyncState: domain.SyncSynced})
		}),
	}

	s.mu.Lock()
	s.offs = offs
	s.mu.Unlock()

	s.apply(res, s.store.State())

	return nil
}

// Unbind detaches every listener using the exact registrations made in Bind
// and releases the resource.
func (s *Synchronizer) Unbind() {
	s.mu.Lock()
	offs := s.offs
	s.offs = nil
	s.res = nil
	s.lastTimeUpdate = time.Time{}
	s.mu.Unlock()

	for _, off := range offs {
		off()
	}
}

// Close unbinds any resource and detaches from the store.
func (s *Synchronizer) Close() {
	s.Unbind()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Synchronizer) resource() Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.res
}

func (s *Synchronizer) onStateChange(prev, next playback.State) {
	res := s.resource()
	if res == nil {
		return
	}

	if !forwardRelevant(prev, next) {
		return
	}

	s.apply(res, next)
}

func forwardRelevant(prev, next playback.State) bool {
	return prev.IsPlaying != next.IsPlaying ||
		prev.Volume != next.Volume ||
		prev.IsMuted != next.IsMuted ||
		!seekTargetsEqual(prev.PendingSeek, next.PendingSeek)
}

func seekTargetsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// apply pushes state to the resource. The seek ordering matters: sync state
// must read "seeking" before the resource actually moves, closing the race
// where a transition check fires mid-seek.
func (s *Synchronizer) apply(res Resource, st playback.State) {
	if st.IsPlaying {
		if res.Paused() {
			if err := res.Play(); err != nil {
				// the resource rejected playback, e.g. user-gesture
				// policy; local state must roll back to match reality
				s.logger.Warn("mediasync: play rejected", "error", err)
				s.store.Dispatch(playback.ReportError{Message: err.Error()})
				s.store.Dispatch(playback.ReportPlayStateChanged{IsPlaying: false})
			}
		}
	} else {
		res.Pause()
	}

	res.SetVolume(st.Volume)
	res.SetMuted(st.IsMuted)

	if st.PendingSeek != nil {
		if st.SyncState != domain.SyncSeeking {
			s.store.Dispatch(playback.SetSyncState{SyncState: domain.SyncSeeking})
		}
		res.SetCurrentTime(*st.PendingSeek)
		s.store.Dispatch(playback.ClearPendingSeek{})
	}
}

func (s *Synchronizer) onTimeUpdate(Event) {
	s.mu.Lock()
	now := s.now()
	if !s.lastTimeUpdate.IsZero() && now.Sub(s.lastTimeUpdate) < s.throttle {
		s.mu.Unlock()
		return
	}
	s.lastTimeUpdate = now
	res := s.res
	s.mu.Unlock()

	if res == nil {
		return
	}

	s.store.Dispatch(playback.ReportTimeUpdate{Time: res.CurrentTime()})
}
