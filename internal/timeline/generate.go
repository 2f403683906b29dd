package timeline

import (
	"github.com/cbegin/morsewave-go/internal/morse"
	"github.com/cbegin/morsewave-go/internal/theme"
)

// Durations in Morse units. A dash is three dots long for every character
// and theme; only the unit length changes with tempo.
const (
	BaseDotDuration = 0.1 // seconds per unit at tempo 1.0
	DotUnits        = 1
	DashUnits       = 3
	ElementGapUnits = 1
	CharGapUnits    = 3
	WordGapUnits    = 7

	// PaddingDuration is appended after the last unit so echo and drone
	// tails finish before playback is torn down.
	PaddingDuration = 2.5
)

type Option func(*config)

type config struct {
	hash      PitchHash
	variation bool
}

// WithHash replaces the pitch hash strategy.
func WithHash(h PitchHash) Option {
	return func(c *config) {
		if h != nil {
			c.hash = h
		}
	}
}

// WithoutVariation disables octave shifts and detuning so every note lands
// on a scale degree.
func WithoutVariation() Option {
	return func(c *config) { c.variation = false }
}

// UnitTime returns the length of one Morse unit for a theme.
func UnitTime(th theme.Theme) float64 {
	return BaseDotDuration / th.Normalize().TempoMultiplier
}

// Generate builds the event list for text. The result depends only on its
// arguments; calling it never touches playback state.
func Generate(text string, th theme.Theme, opts ...Option) []Event {
	cfg := config{hash: DefaultHash, variation: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	th = th.Normalize()
	unit := BaseDotDuration / th.TempoMultiplier
	p := pitcher{hash: cfg.hash, base: th.BaseFrequency, scale: th.Scale, variation: cfg.variation}

	units := morse.Encode(text).Units
	b := builder{}
	if !hasCode(units) {
		b.silence(PaddingDuration, SymbolNone, 0)
		return b.events
	}
	for i, u := range units {
		if u.Kind == morse.UnitWordSpace {
			b.silence(WordGapUnits*unit, SymbolWordSpace, 0)
			continue
		}
		for j, sym := range u.Code {
			if j > 0 {
				b.silence(ElementGapUnits*unit, SymbolElementSpace, u.Text)
			}
			s, d := SymbolDot, float64(DotUnits)*unit
			if sym == '-' {
				s, d = SymbolDash, DashUnits*unit
			}
			b.note(d, s, p.frequency(u.Text, i, j, len(units)), u.Text)
		}
		// A following word gap stands in for the character gap.
		if i+1 < len(units) && units[i+1].Kind == morse.UnitWordSpace {
			continue
		}
		b.silence(CharGapUnits*unit, SymbolCharSpace, u.Text)
	}
	b.silence(PaddingDuration, SymbolNone, 0)
	return b.events
}

// hasCode reports whether any unit sounds; word spaces alone do not.
func hasCode(units []morse.Unit) bool {
	for _, u := range units {
		if u.Code != "" {
			return true
		}
	}
	return false
}

type builder struct {
	events []Event
	now    float64
}

func (b *builder) note(d float64, s Symbol, freq float64, src rune) {
	b.events = append(b.events, Event{Kind: EventNote, Start: b.now, Duration: d, Symbol: s, Frequency: freq, Source: src})
	b.now += d
}

func (b *builder) silence(d float64, s Symbol, src rune) {
	b.events = append(b.events, Event{Kind: EventSilence, Start: b.now, Duration: d, Symbol: s, Source: src})
	b.now += d
}
