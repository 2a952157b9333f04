package playback

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultTolerance is how close, in seconds, the playhead must get to
	// the active segment's end before the monitor advances. Large enough to
	// absorb timeupdate granularity, small enough not to clip the segment
	// audibly.
	DefaultTolerance = 0.2

	// DefaultCooldown is the minimum wall-clock spacing between two
	// transitions, guarding against oscillation when tolerance and event
	// granularity interact near a boundary.
	DefaultCooldown = 500 * time.Millisecond
)

// MonitorConfig tunes the segment transition monitor. Zero values fall back
// to the defaults; Now defaults to time.Now and exists for tests.
type MonitorConfig struct {
	Tolerance float64
	Cooldown  time.Duration
	Now       func() time.Time
}

// Monitor watches the playhead against the active highlight segment's end
// and advances (or wraps) the virtual timeline when the boundary is
// crossed. The highlight sequence loops indefinitely rather than stopping.
type Monitor struct {
	store     *Store
	logger    *slog.Logger
	tolerance float64
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	lastFire time.Time

	unsubscribe func()
}

func NewMonitor(store *Store, cfg *MonitorConfig, logger *slog.Logger) *Monitor {
	m := &Monitor{
		store:     store,
		logger:    logger,
		tolerance: DefaultTolerance,
		cooldown:  DefaultCooldown,
		now:       time.Now,
	}
	if cfg != nil {
		if cfg.Tolerance > 0 {
			m.tolerance = cfg.Tolerance
		}
		if cfg.Cooldown > 0 {
			m.cooldown = cfg.Cooldown
		}
		if cfg.Now != nil {
			m.now = cfg.Now
		}
	}

	m.unsubscribe = store.Subscribe(m.check)

	return m
}

// Close detaches the monitor from the store.
func (m *Monitor) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Monitor) check(prev, next State) {
	if next.CurrentTime == prev.CurrentTime {
		return
	}

	active, ok := next.ActiveSegment()
	if !ok {
		return
	}

	// an outstanding seek means CurrentTime does not yet reflect the
	// resource's true position; advancing on it would double-advance
	if next.PendingSeek != nil {
		return
	}

	if active.End-next.CurrentTime > m.tolerance {
		return
	}

	m.mu.Lock()
	now := m.now()
	if !m.lastFire.IsZero() && now.Sub(m.lastFire) < m.cooldown {
		m.mu.Unlock()
		return
	}
	m.lastFire = now
	m.mu.Unlock()

	nextIndex := next.CurrentSegmentIndex + 1
	if nextIndex >= len(next.HighlightSegments) {
		nextIndex = 0
	}
	target := next.HighlightSegments[nextIndex]

	m.logger.Debug("playback.monitor.check",
		"from_index", next.CurrentSegmentIndex,
		"to_index", nextIndex,
		"target_start", target.Start,
	)

	m.store.Dispatch(AdvanceToSegment{Index: nextIndex, StartTime: target.Start})
}
