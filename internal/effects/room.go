package effects

import "math"

// Room is a small Schroeder reverb for the pad bus: four damped combs per
// channel into two allpass diffusers. The right channel's delays are
// offset to widen the image.
type Room struct {
	left, right  [4]comb
	diffL, diffR [2]allpass
	wet          float32
}

type comb struct {
	buf      []float32
	pos      int
	feedback float32
	damp     float32
	store    float32
}

type allpass struct {
	buf []float32
	pos int
}

var (
	combTimes    = [4]float64{0.0297, 0.0371, 0.0411, 0.0437} // seconds at size 1
	allpassTimes = [2]float64{0.0050, 0.0017}
)

const stereoSpread = 0.0005

// NewRoom builds a room. size scales the delay lines (0.1..1), decay is
// the RT60 in seconds and wet is the mix.
func NewRoom(sampleRate int, size, decay float64, wet float32) *Room {
	size = math.Min(math.Max(size, 0.1), 1)
	decay = math.Max(decay, 0.05)
	sr := float64(sampleRate)
	r := &Room{wet: clamp(wet, 0, 1)}
	for i, t := range combTimes {
		r.left[i] = newComb(t*size, decay, sr)
		r.right[i] = newComb(t*size+stereoSpread, decay, sr)
	}
	for i, t := range allpassTimes {
		r.diffL[i] = newAllpass(t, sr)
		r.diffR[i] = newAllpass(t+stereoSpread/2, sr)
	}
	return r
}

// newComb sets feedback so the loop falls 60 dB over decay seconds.
func newComb(delay, decay, sr float64) comb {
	n := max(int(delay*sr), 1)
	g := math.Pow(10, -3*float64(n)/sr/decay)
	return comb{buf: make([]float32, n), feedback: float32(g), damp: 0.3}
}

func newAllpass(delay, sr float64) allpass {
	return allpass{buf: make([]float32, max(int(delay*sr), 1))}
}

func (r *Room) Process(l, rt float32) (float32, float32) {
	in := (l + rt) * 0.5
	var wl, wr float32
	for i := range r.left {
		wl += r.left[i].process(in)
		wr += r.right[i].process(in)
	}
	wl *= 0.25
	wr *= 0.25
	for i := range r.diffL {
		wl = r.diffL[i].process(wl)
		wr = r.diffR[i].process(wr)
	}
	return l*(1-r.wet) + wl*r.wet, rt*(1-r.wet) + wr*r.wet
}

func (r *Room) Reset() {
	for i := range r.left {
		r.left[i].reset()
		r.right[i].reset()
	}
	for i := range r.diffL {
		clear(r.diffL[i].buf)
		r.diffL[i].pos = 0
		clear(r.diffR[i].buf)
		r.diffR[i].pos = 0
	}
}

func (c *comb) process(in float32) float32 {
	out := c.buf[c.pos]
	c.store = out*(1-c.damp) + c.store*c.damp
	c.buf[c.pos] = in + c.store*c.feedback
	if c.pos++; c.pos == len(c.buf) {
		c.pos = 0
	}
	return out
}

func (c *comb) reset() {
	clear(c.buf)
	c.pos = 0
	c.store = 0
}

func (a *allpass) process(in float32) float32 {
	delayed := a.buf[a.pos]
	a.buf[a.pos] = in + delayed*0.5
	if a.pos++; a.pos == len(a.buf) {
		a.pos = 0
	}
	return delayed - in
}
