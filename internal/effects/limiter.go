package effects

import "math"

// Limiter keeps the master bus under a ceiling with a linked stereo
// envelope: fast attack, slow release.
type Limiter struct {
	ceiling float32
	attack  float32
	release float32
	env     float32
}

// NewLimiter creates a limiter. ceilingDB is typically just below 0.
func NewLimiter(sampleRate int, ceilingDB, attackMs, releaseMs float64) *Limiter {
	sr := float64(sampleRate)
	return &Limiter{
		ceiling: float32(math.Pow(10, ceilingDB/20)),
		attack:  float32(1 - math.Exp(-1/(attackMs*sr/1000))),
		release: float32(1 - math.Exp(-1/(releaseMs*sr/1000))),
	}
}

func (m *Limiter) Process(l, r float32) (float32, float32) {
	peak := float32(math.Max(math.Abs(float64(l)), math.Abs(float64(r))))
	if peak > m.env {
		m.env += m.attack * (peak - m.env)
	} else {
		m.env += m.release * (peak - m.env)
	}
	g := float32(1)
	if m.env > m.ceiling {
		g = m.ceiling / m.env
	}
	return clamp(l*g, -1, 1), clamp(r*g, -1, 1)
}

// Gain returns the current gain reduction factor (1 = none).
func (m *Limiter) Gain() float32 {
	if m.env > m.ceiling {
		return m.ceiling / m.env
	}
	return 1
}

func (m *Limiter) Reset() { m.env = 0 }
