// Package theme holds the sonification settings for one rendition of a text.
package theme

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownWaveform   = errors.New("unknown waveform")
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrUnknownScale      = errors.New("unknown scale")
	ErrUnknownPreset     = errors.New("unknown preset")
)

type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

var waveformNames = [...]string{"sine", "square", "sawtooth", "triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return "unknown"
	}
	return waveformNames[w]
}

func (w Waveform) valid() bool {
	return w >= 0 && int(w) < len(waveformNames)
}

// ParseWaveform accepts the names returned by Waveform.String plus "saw".
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "saw" {
		return WaveSawtooth, nil
	}
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// Instrument selects the synthesis model used at playback.
type Instrument int

const (
	InstrumentPiano Instrument = iota
	InstrumentMarimba
	InstrumentViolin
	InstrumentSynth
)

var instrumentNames = [...]string{"piano", "marimba", "violin", "synth"}

func (i Instrument) String() string {
	if i < 0 || int(i) >= len(instrumentNames) {
		return "unknown"
	}
	return instrumentNames[i]
}

func (i Instrument) valid() bool {
	return i >= 0 && int(i) < len(instrumentNames)
}

func ParseInstrument(name string) (Instrument, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range instrumentNames {
		if n == name {
			return Instrument(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
}

// Reference values substituted for malformed settings.
const (
	DefaultBaseFrequency   = 440.0
	DefaultTempoMultiplier = 1.0
)

// Theme controls tempo, pitch and timbre. Colors are only read by renderers.
type Theme struct {
	Mood            string
	Primary         string
	Secondary       string
	Waveform        Waveform
	BaseFrequency   float64
	TempoMultiplier float64
	Scale           []int
	Instrument      Instrument
}

// Default returns the reference theme.
func Default() Theme {
	return Theme{
		Mood:            "neutral",
		Primary:         "#7aa2f7",
		Secondary:       "#bb9af7",
		Waveform:        WaveSine,
		BaseFrequency:   DefaultBaseFrequency,
		TempoMultiplier: DefaultTempoMultiplier,
		Scale:           MajorPentatonic(),
		Instrument:      InstrumentPiano,
	}
}

// Normalize returns a copy that is safe to generate and play with: an empty
// scale, a non-positive or non-finite tempo or frequency, and out-of-range
// enums are replaced by the reference values. The scale is always copied.
func (t Theme) Normalize() Theme {
	out := t
	if len(t.Scale) == 0 {
		out.Scale = MajorPentatonic()
	} else {
		out.Scale = append([]int(nil), t.Scale...)
	}
	if !positive(t.BaseFrequency) {
		out.BaseFrequency = DefaultBaseFrequency
	}
	if !positive(t.TempoMultiplier) {
		out.TempoMultiplier = DefaultTempoMultiplier
	}
	if !t.Waveform.valid() {
		out.Waveform = WaveSine
	}
	if !t.Instrument.valid() {
		out.Instrument = InstrumentPiano
	}
	if strings.TrimSpace(out.Mood) == "" {
		out.Mood = "neutral"
	}
	return out
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
