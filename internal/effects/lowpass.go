package effects

import "math"

// LowPass is a two-stage one-pole low-pass, 12 dB/octave.
type LowPass struct {
	alpha  float32
	l1, l2 float32
	r1, r2 float32
}

func NewLowPass(sampleRate int, cutoff float64) *LowPass {
	if cutoff <= 0 || cutoff >= float64(sampleRate)/2 {
		return &LowPass{alpha: 1}
	}
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / float64(sampleRate)
	return &LowPass{alpha: float32(dt / (rc + dt))}
}

func (f *LowPass) Process(l, r float32) (float32, float32) {
	f.l1 += f.alpha * (l - f.l1)
	f.l2 += f.alpha * (f.l1 - f.l2)
	f.r1 += f.alpha * (r - f.r1)
	f.r2 += f.alpha * (f.r1 - f.r2)
	return f.l2, f.r2
}

func (f *LowPass) Reset() {
	f.l1, f.l2, f.r1, f.r2 = 0, 0, 0, 0
}
