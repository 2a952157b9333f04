// Package mediasync bridges playback state and one external mutable media
// resource. It is the only component allowed to read or write the resource:
// it applies store state to it (play, pause, volume, seek) and translates
// the resource's native events back into intents.
package mediasync

// EventType names a native media resource event.
type EventType string

const (
	EventTimeUpdate     EventType = "timeupdate"
	EventLoadedMetadata EventType = "loadedmetadata"
	EventPlay           EventType = "play"
	EventPause          EventType = "pause"
	EventEnded          EventType = "ended"
	EventError          EventType = "error"
	EventLoadStart      EventType = "loadstart"
	EventCanPlay        EventType = "canplay"
	EventSeeking        EventType = "seeking"
	EventSeeked         EventType = "seeked"
)

// Event is a native media resource event. CurrentTime and Duration carry
// the resource's values at emission time; Message is set on error events.
type Event struct {
	Type        EventType `json:"type"`
	CurrentTime float64   `json:"current_time"`
	Duration    float64   `json:"duration"`
	Message     string    `json:"message"`
}

// Resource is the capability contract of the external media element. Any
// object exposing these properties, methods and events is sufficient; the
// engine has no dependency on how the media is decoded or fetched.
//
// On registers fn for the given event and returns a func that detaches
// exactly this registration.
type Resource interface {
	CurrentTime() float64
	SetCurrentTime(t float64)
	Play() error
	Pause()
	Paused() bool
	Volume() float64
	SetVolume(v float64)
	Muted() bool
	SetMuted(muted bool)
	Duration() float64
	On(event EventType, fn func(Event)) (off func())
}
