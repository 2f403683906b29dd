package effects

// Echo is a ping-pong feedback delay. Repeats alternate between channels.
type Echo struct {
	bufL, bufR []float32
	pos        int
	feedback   float32
	wet        float32
}

// NewEcho creates an echo with the given delay in seconds. feedback is
// capped below 1 so the tail always dies out.
func NewEcho(sampleRate int, delaySec float64, feedback, wet float32) *Echo {
	n := int(delaySec * float64(sampleRate))
	if n < 1 {
		n = 1
	}
	return &Echo{
		bufL:     make([]float32, n),
		bufR:     make([]float32, n),
		feedback: clamp(feedback, 0, 0.9),
		wet:      clamp(wet, 0, 1),
	}
}

func (e *Echo) Process(l, r float32) (float32, float32) {
	dl, dr := e.bufL[e.pos], e.bufR[e.pos]
	mono := (l + r) * 0.5
	e.bufL[e.pos] = mono + dr*e.feedback
	e.bufR[e.pos] = dl * e.feedback
	e.pos++
	if e.pos == len(e.bufL) {
		e.pos = 0
	}
	return l + dl*e.wet, r + dr*e.wet
}

func (e *Echo) Reset() {
	clear(e.bufL)
	clear(e.bufR)
	e.pos = 0
}
