// Package inmemory provides a simulated media resource implementing the
// mediasync capability contract. Time advances only when Advance is called,
// which makes it deterministic for tests and headless sessions.
package inmemory

import (
	"sync"

	"github.com/snipcast/server/internal/mediasync"
)

type Resource struct {
	mu          sync.Mutex
	currentTime float64
	duration    float64
	volume      float64
	muted       bool
	paused      bool
	playErr     error
	listeners   map[mediasync.EventType]map[int]func(mediasync.Event)
	nextId      int
}

func NewResource(duration float64) *Resource {
	return &Resource{
		duration:  duration,
		volume:    1,
		paused:    true,
		listeners: make(map[mediasync.EventType]map[int]func(mediasync.Event)),
	}
}

// FailPlayWith makes subsequent Play calls return err, simulating an
// autoplay-policy or decode rejection. Pass nil to restore.
func (r *Resource) FailPlayWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playErr = err
}

func (r *Resource) CurrentTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currentTime
}

func (r *Resource) SetCurrentTime(t float64) {
	r.mu.Lock()
	if t < 0 {
		t = 0
	}
	if r.duration > 0 && t > r.duration {
		t = r.duration
	}
	r.currentTime = t
	r.mu.Unlock()

	r.emit(mediasync.Event{Type: mediasync.EventSeeking, CurrentTime: t})
	r.emit(mediasync.Event{Type: mediasync.EventSeeked, CurrentTime: t})
}

func (r *Resource) Play() error {
	r.mu.Lock()
	if r.playErr != nil {
		err := r.playErr
		r.mu.Unlock()
		return err
	}
	if !r.paused {
		r.mu.Unlock()
		return nil
	}
	r.paused = false
	t := r.currentTime
	r.mu.Unlock()

	r.emit(mediasync.Event{Type: mediasync.EventPlay, CurrentTime: t})

	return nil
}

func (r *Resource) Pause() {
	r.mu.Lock()
	if r.paused {
		r.mu.Unlock()
		return
	}
	r.paused = true
	t := r.currentTime
	r.mu.Unlock()

	r.emit(mediasync.Event{Type: mediasync.EventPause, CurrentTime: t})
}

func (r *Resource) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.paused
}

func (r *Resource) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.volume
}

func (r *Resource) SetVolume(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.volume = v
}

func (r *Resource) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.muted
}

func (r *Resource) SetMuted(muted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.muted = muted
}

func (r *Resource) Duration() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.duration
}

// Load replays the metadata event sequence a media element emits when its
// source is set.
func (r *Resource) Load() {
	r.mu.Lock()
	d := r.duration
	r.mu.Unlock()

	r.emit(mediasync.Event{Type: mediasync.EventLoadStart})
	r.emit(mediasync.Event{Type: mediasync.EventLoadedMetadata, Duration: d})
	r.emit(mediasync.Event{Type: mediasync.EventCanPlay, Duration: d})
}

// Fail emits a native error event.
func (r *Resource) Fail(message string) {
	r.emit(mediasync.Event{Type: mediasync.EventError, Message: message})
}

// Advance steps the simulated clock by dt seconds while playing, emitting
// timeupdate and, at the end of the media, ended.
func (r *Resource) Advance(dt float64) {
	r.mu.Lock()
	if r.paused || dt <= 0 {
		r.mu.Unlock()
		return
	}

	ended := false
	r.currentTime += dt
	if r.duration > 0 && r.currentTime >= r.duration {
		r.currentTime = r.duration
		r.paused = true
		ended = true
	}
	t := r.currentTime
	d := r.duration
	r.mu.Unlock()

	r.emit(mediasync.Event{Type: mediasync.EventTimeUpdate, CurrentTime: t, Duration: d})
	if ended {
		r.emit(mediasync.Event{Type: mediasync.EventEnded, CurrentTime: t, Duration: d})
	}
}

func (r *Resource) On(event mediasync.EventType, fn func(mediasync.Event)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextId
	r.nextId++
	if r.listeners[event] == nil {
		r.listeners[event] = make(map[int]func(mediasync.Event))
	}
	r.listeners[event][id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		delete(r.listeners[event], id)
	}
}

// emit snapshots the registered listeners and calls them without holding
// the lock, so handlers may read the resource.
func (r *Resource) emit(ev mediasync.Event) {
	r.mu.Lock()
	fns := make([]func(mediasync.Event), 0, len(r.listeners[ev.Type]))
	for _, fn := range r.listeners[ev.Type] {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
