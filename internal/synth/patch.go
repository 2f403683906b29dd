// Package synth renders scheduled tones and the ambient drone.
package synth

import "github.com/cbegin/morsewave-go/internal/theme"

// Partial is one oscillator of a patch, tuned as a ratio of the note
// frequency.
type Partial struct {
	Ratio float64
	Amp   float64
	Wave  theme.Waveform
}

// Patch is the synthesis record selected by an instrument.
type Patch struct {
	Partials []Partial
	Peak     float64
	Attack   float64 // seconds to reach Peak
	Decay    float64 // exponential decay time constant in seconds; 0 holds Peak
	Sustain  float64 // decay floor as a fraction of Peak
	Release  float64 // seconds, ends exactly at the note end
	Cutoff   float64 // low-pass cutoff in Hz; 0 disables

	VibratoDepth float64 // semitones
	VibratoRate  float64 // Hz
}

// PatchFor maps an instrument to its patch. The synth instrument plays the
// theme waveform plainly; the others have fixed timbres.
func PatchFor(inst theme.Instrument, wave theme.Waveform) Patch {
	switch inst {
	case theme.InstrumentPiano:
		return Patch{
			Partials: []Partial{{Ratio: 1, Amp: 1}, {Ratio: 2, Amp: 0.35}},
			Peak:     0.5,
			Attack:   0.004,
			Decay:    0.25,
			Sustain:  0.35,
			Release:  0.03,
		}
	case theme.InstrumentMarimba:
		return Patch{
			Partials: []Partial{{Ratio: 1, Amp: 1}, {Ratio: 4, Amp: 0.08}},
			Peak:     0.55,
			Attack:   0.002,
			Decay:    0.18,
			Sustain:  0,
			Release:  0.02,
		}
	case theme.InstrumentViolin:
		return Patch{
			Partials:     []Partial{{Ratio: 1, Amp: 1, Wave: theme.WaveSawtooth}},
			Peak:         0.35,
			Attack:       0.06,
			Sustain:      1,
			Release:      0.08,
			Cutoff:       2400,
			VibratoDepth: 0.12,
			VibratoRate:  5.5,
		}
	default:
		return Patch{
			Partials: []Partial{{Ratio: 1, Amp: 1, Wave: wave}},
			Peak:     0.4,
			Attack:   0.005,
			Sustain:  1,
			Release:  0.03,
		}
	}
}

func (p Patch) partialGain() float64 {
	var sum float64
	for _, pt := range p.Partials {
		sum += pt.Amp
	}
	if sum == 0 {
		return 0
	}
	return 1 / sum
}
