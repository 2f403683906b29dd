package lfo

import "math"

// Shape selects the modulator waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeTriangle
)

// LFO is a low-frequency oscillator advanced once per sample. It returns
// values in [-depth, +depth]; units depend on the caller (semitones for
// vibrato, a gain factor for shimmer).
type LFO struct {
	shape Shape
	depth float64
	step  float64 // phase increment per sample
	phase float64 // [0, 1)
}

// New returns an LFO. A zero rate or depth yields a silent modulator.
func New(shape Shape, rateHz, depth float64, sampleRate int) LFO {
	l := LFO{shape: shape, depth: depth}
	if sampleRate > 0 && rateHz > 0 {
		l.step = rateHz / float64(sampleRate)
	}
	return l
}

// WithPhase returns a copy starting at phase p (wrapped into [0, 1)).
func (l LFO) WithPhase(p float64) LFO {
	l.phase = p - math.Floor(p)
	return l
}

// Next returns the current value and advances one sample.
func (l *LFO) Next() float64 {
	if !l.Active() {
		return 0
	}
	var v float64
	switch l.shape {
	case ShapeTriangle:
		if l.phase < 0.5 {
			v = 4*l.phase - 1
		} else {
			v = 3 - 4*l.phase
		}
	default:
		v = math.Sin(2 * math.Pi * l.phase)
	}
	l.phase += l.step
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}
	return v * l.depth
}

func (l *LFO) Active() bool {
	return l.depth != 0 && l.step != 0
}
