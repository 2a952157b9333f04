// Package bridge implements the mediasync capability contract for a media
// element hosted by the client. Property writes are emitted as commands on
// the session connection; property reads are served from the values the
// element last reported; native events arrive through HandleEvent.
package bridge

import (
	"log/slog"
	"sync"

	"github.com/snipcast/server/internal/mediasync"
)

const (
	ActionPlay   = "play"
	ActionPause  = "pause"
	ActionSeek   = "seek"
	ActionVolume = "volume"
	ActionMuted  = "muted"
)

// Command is an instruction for the client-hosted media element.
type Command struct {
	Action string  `json:"action"`
	Value  float64 `json:"value"`
	On     bool    `json:"on"`
}

type Resource struct {
	send   func(Command) error
	logger *slog.Logger

	mu          sync.Mutex
	currentTime float64
	duration    float64
	volume      float64
	muted       bool
	paused      bool
	listeners   map[mediasync.EventType]map[int]func(mediasync.Event)
	nextId      int
}

func NewResource(send func(Command) error, logger *slog.Logger) *Resource {
	return &Resource{
		send:      send,
		logger:    logger,
		volume:    1,
		paused:    true,
		listeners: make(map[mediasync.EventType]map[int]func(mediasync.Event)),
	}
}

func (r *Resource) CurrentTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currentTime
}

func (r *Resource) SetCurrentTime(t float64) {
	r.mu.Lock()
	r.currentTime = t
	r.mu.Unlock()

	r.command(Command{Action: ActionSeek, Value: t})
}

func (r *Resource) Play() error {
	return r.send(Command{Action: ActionPlay})
}

func (r *Resource) Pause() {
	r.command(Command{Action: ActionPause})
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
	r.volume = v
	r.mu.Unlock()

	r.command(Command{Action: ActionVolume, Value: v})
}

func (r *Resource) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.muted
}

func (r *Resource) SetMuted(muted bool) {
	r.mu.Lock()
	r.muted = muted
	r.mu.Unlock()

	r.command(Command{Action: ActionMuted, On: muted})
}

func (r *Resource) Duration() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.duration
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

// HandleEvent records the reported element state and fans the event out to
// registered listeners. The element is the source of truth, so reported
// values always overwrite the cache.
func (r *Resource) HandleEvent(ev mediasync.Event) {
	r.mu.Lock()
	switch ev.Type {
	case mediasync.EventTimeUpdate, mediasync.EventSeeking, mediasync.EventSeeked:
		r.currentTime = ev.CurrentTime
		if ev.Duration > 0 {
			r.duration = ev.Duration
		}
	case mediasync.EventLoadedMetadata, mediasync.EventCanPlay:
		if ev.Duration > 0 {
			r.duration = ev.Duration
		}
	case mediasync.EventPlay:
		r.paused = false
	case mediasync.EventPause, mediasync.EventEnded:
		r.paused = true
	}

	fns := make([]func(mediasync.Event), 0, len(r.listeners[ev.Type]))
	for _, fn := range r.listeners[ev.Type] {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (r *Resource) command(cmd Command) {
	if err := r.send(cmd); err != nil {
		r.logger.Warn("bridge: failed to send command", "action", cmd.Action, "error", err)
	}
}
