package synth

import (
	"math"

	"github.com/cbegin/morsewave-go/internal/lfo"
)

// Tone is one note scheduled at absolute frames [Start, End) on the audio
// clock. Its envelope is a pure function of the frame offset, so a tone
// renders identically no matter when the audio thread first pulls it.
type Tone struct {
	Start, End int64

	freq       float64
	sampleRate float64
	patch      Patch
	norm       float64
	attack     int64
	release    int64
	decayRate  float64 // per-frame exponent; 0 holds
	phases     []float64
	filter     onePole
	vibrato    lfo.LFO
}

// NewTone schedules a note of the given patch. length is in frames and
// must be positive.
func NewTone(p Patch, freq float64, start, length int64, sampleRate int) *Tone {
	if length < 1 {
		length = 1
	}
	sr := float64(sampleRate)
	t := &Tone{
		Start:      start,
		End:        start + length,
		freq:       freq,
		sampleRate: sr,
		patch:      p,
		norm:       p.partialGain(),
		phases:     make([]float64, len(p.Partials)),
		filter:     newOnePole(p.Cutoff, sr),
		vibrato:    lfo.New(lfo.ShapeSine, p.VibratoRate, p.VibratoDepth, sampleRate),
	}
	t.attack = int64(math.Round(p.Attack * sr))
	t.release = int64(math.Round(p.Release * sr))
	// Attack and release share the note; neither may swallow it.
	if t.attack+t.release > length {
		t.attack = length / 2
		t.release = length - t.attack
	}
	if t.release < 1 {
		t.release = 1
	}
	if p.Decay > 0 {
		t.decayRate = 1 / (p.Decay * sr)
	}
	return t
}

// Envelope returns the amplitude at an absolute frame. It is zero outside
// [Start, End) and reaches zero exactly at End.
func (t *Tone) Envelope(frame int64) float64 {
	if frame < t.Start || frame >= t.End {
		return 0
	}
	n := frame - t.Start
	level := t.patch.Peak
	if n < t.attack {
		level *= float64(n) / float64(t.attack)
	} else if t.decayRate > 0 {
		s := t.patch.Sustain
		level *= s + (1-s)*math.Exp(-float64(n-t.attack)*t.decayRate)
	}
	if left := t.End - frame; left <= t.release {
		level *= float64(left-1) / float64(t.release)
	}
	return level
}

// Render produces the mono sample for frame and advances oscillator state.
// Frames must be presented in increasing order.
func (t *Tone) Render(frame int64) float64 {
	env := t.Envelope(frame)
	if frame < t.Start || frame >= t.End {
		return 0
	}
	freq := t.freq
	if t.vibrato.Active() {
		freq *= math.Pow(2, t.vibrato.Next()/12)
	}
	var sig float64
	for i, pt := range t.patch.Partials {
		sig += oscillate(pt.Wave, t.phases[i]) * pt.Amp
		t.phases[i] = advance(t.phases[i], freq*pt.Ratio, t.sampleRate)
	}
	return t.filter.process(sig*t.norm) * env
}

// Done reports whether the tone has finished by frame.
func (t *Tone) Done(frame int64) bool { return frame >= t.End }
