package morsewave

import (
	"time"

	"github.com/cbegin/morsewave-go/internal/timeline"
)

// ClockReader is what a renderer samples each frame.
type ClockReader interface {
	Elapsed() float64
	IsRunning() bool
}

// Clock reports playback time from the output's position, so it tracks
// what has been heard rather than what has been rendered. It has no loop
// of its own.
type Clock struct {
	engine *Engine
}

var _ ClockReader = (*Clock)(nil)

// Elapsed returns seconds since the timeline origin, or 0 when nothing is
// playing or the lead-in has not passed yet.
func (c *Clock) Elapsed() float64 {
	e := c.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePlaying || e.out == nil {
		return 0
	}
	d := e.out.Position() - e.cfg.leadIn
	if d <= 0 {
		return 0
	}
	return min(d.Seconds(), e.total)
}

func (c *Clock) IsRunning() bool {
	e := c.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StatePlaying
}

// Progress is Elapsed as a fraction of total, clamped to [0, 1].
func (c *Clock) Progress(total float64) float64 {
	return timeline.Progress(c.Elapsed(), total)
}

// Position is Elapsed as a duration.
func (c *Clock) Position() time.Duration {
	return time.Duration(c.Elapsed() * float64(time.Second))
}
