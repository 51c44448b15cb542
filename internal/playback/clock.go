// Package playback tracks where playback is in a track and drives audio
// output.
package playback

// State is the playback state of a Clock.
type State uint8

const (
	Idle State = iota
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// TimeSource is a monotonic clock in seconds. The engine's own clock is
// used so elapsed time follows the audio rather than the wall.
type TimeSource interface {
	Now() float64
}

// Clock computes elapsed playback time from an anchor on the engine clock.
//
// While Playing, elapsed = now - anchor. Resuming moves the anchor back by
// the paused offset, so a pause followed immediately by a resume leaves
// elapsed unchanged. While Paused, elapsed = offset; after Stop it is 0.
//
// Clock is not safe for concurrent use.
type Clock struct {
	src      TimeSource
	state    State
	anchor   float64
	offset   float64
	duration float64
}

// NewClock returns an Idle clock reading time from src.
func NewClock(src TimeSource) *Clock {
	return &Clock{src: src}
}

// Reset returns the clock to Idle for a track of the given length in
// seconds. A duration of 0 disables clamping.
func (c *Clock) Reset(duration float64) {
	c.state = Idle
	c.anchor = 0
	c.offset = 0
	c.duration = duration
}

// State returns the current state.
func (c *Clock) State() State { return c.state }

// Duration returns the track length the clock clamps to.
func (c *Clock) Duration() float64 { return c.duration }

// Offset returns the position playback resumes from.
func (c *Clock) Offset() float64 { return c.offset }

// Start begins playback from the top. Valid from Idle or Stopped; reports
// whether the transition happened.
func (c *Clock) Start() bool {
	if c.state != Idle && c.state != Stopped {
		return false
	}
	c.anchor = c.src.Now()
	c.offset = 0
	c.state = Playing
	return true
}

// Pause captures the elapsed time. Valid only while Playing.
func (c *Clock) Pause() bool {
	if c.state != Playing {
		return false
	}
	c.offset = c.clamp(c.src.Now() - c.anchor)
	c.anchor = 0
	c.state = Paused
	return true
}

// Resume continues from the paused offset. Valid only while Paused.
func (c *Clock) Resume() bool {
	if c.state != Paused {
		return false
	}
	c.anchor = c.src.Now() - c.offset
	c.state = Playing
	return true
}

// Stop rewinds to 0. Valid from Playing or Paused.
func (c *Clock) Stop() bool {
	if c.state != Playing && c.state != Paused {
		return false
	}
	c.anchor = 0
	c.offset = 0
	c.state = Stopped
	return true
}

// Elapsed returns the playback position in seconds, never negative and
// never past the track duration.
func (c *Clock) Elapsed() float64 {
	switch c.state {
	case Playing:
		return c.clamp(c.src.Now() - c.anchor)
	case Paused:
		return c.offset
	default:
		return 0
	}
}

func (c *Clock) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if c.duration > 0 && t > c.duration {
		return c.duration
	}
	return t
}
