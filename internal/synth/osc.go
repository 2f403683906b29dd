package synth

import (
	"math"

	"github.com/cbegin/morsewave-go/internal/theme"
)

const twoPi = 2 * math.Pi

// oscillate returns one sample of a waveform at phase in [0, 1).
func oscillate(w theme.Waveform, phase float64) float64 {
	switch w {
	case theme.WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case theme.WaveSawtooth:
		return 2*phase - 1
	case theme.WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(twoPi * phase)
	}
}

func advance(phase, freq, sampleRate float64) float64 {
	phase += freq / sampleRate
	if phase >= 1 {
		phase -= math.Floor(phase)
	}
	return phase
}

// onePole is the single-pole low-pass on the violin patch.
type onePole struct {
	alpha float64
	y     float64
}

func newOnePole(cutoff, sampleRate float64) onePole {
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return onePole{}
	}
	rc := 1 / (twoPi * cutoff)
	dt := 1 / sampleRate
	return onePole{alpha: dt / (rc + dt)}
}

func (f *onePole) process(x float64) float64 {
	if f.alpha == 0 {
		return x
	}
	f.y += f.alpha * (x - f.y)
	return f.y
}
