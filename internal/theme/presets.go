package theme

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type preset struct {
	theme    Theme
	keywords []string
}

// Order matters for Derive: the first preset with a keyword hit wins.
var presetOrder = []string{"melancholy", "mysterious", "energetic", "joyful", "dreamy", "calm"}

var presets = map[string]preset{
	"calm": {
		theme: Theme{
			Mood: "calm", Primary: "#9ece6a", Secondary: "#73daca",
			Waveform: WaveSine, BaseFrequency: 330, TempoMultiplier: 0.8,
			Scale: []int{0, 2, 4, 7, 9}, Instrument: InstrumentMarimba,
		},
		keywords: []string{"calm", "peace", "quiet", "rest", "sleep", "ocean", "평화", "고요"},
	},
	"joyful": {
		theme: Theme{
			Mood: "joyful", Primary: "#e0af68", Secondary: "#ff9e64",
			Waveform: WaveTriangle, BaseFrequency: 440, TempoMultiplier: 1.2,
			Scale: []int{0, 2, 4, 5, 7, 9, 11}, Instrument: InstrumentPiano,
		},
		keywords: []string{"happy", "joy", "love", "sun", "smile", "party", "행복", "사랑"},
	},
	"melancholy": {
		theme: Theme{
			Mood: "melancholy", Primary: "#565f89", Secondary: "#7dcfff",
			Waveform: WaveSawtooth, BaseFrequency: 262, TempoMultiplier: 0.7,
			Scale: []int{0, 2, 3, 7, 8}, Instrument: InstrumentViolin,
		},
		keywords: []string{"sad", "tear", "rain", "alone", "lost", "goodbye", "슬픔", "이별"},
	},
	"mysterious": {
		theme: Theme{
			Mood: "mysterious", Primary: "#bb9af7", Secondary: "#2ac3de",
			Waveform: WaveSine, BaseFrequency: 294, TempoMultiplier: 0.9,
			Scale: []int{0, 2, 4, 6, 8, 10}, Instrument: InstrumentSynth,
		},
		keywords: []string{"secret", "night", "dark", "moon", "shadow", "star", "비밀", "밤"},
	},
	"energetic": {
		theme: Theme{
			Mood: "energetic", Primary: "#f7768e", Secondary: "#ff9e64",
			Waveform: WaveSquare, BaseFrequency: 523, TempoMultiplier: 1.6,
			Scale: []int{0, 3, 5, 6, 7, 10}, Instrument: InstrumentSynth,
		},
		keywords: []string{"run", "fast", "fire", "go", "now", "sos", "help", "불", "빨리"},
	},
	"dreamy": {
		theme: Theme{
			Mood: "dreamy", Primary: "#c0caf5", Secondary: "#b4f9f8",
			Waveform: WaveTriangle, BaseFrequency: 392, TempoMultiplier: 0.85,
			Scale: []int{0, 2, 4, 6, 7, 9, 11}, Instrument: InstrumentMarimba,
		},
		keywords: []string{"dream", "cloud", "sky", "float", "wish", "꿈", "하늘"},
	},
}

// Preset returns a copy of a named mood preset.
func Preset(name string) (Theme, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.theme.Normalize(), nil
}

func Presets() []string {
	return append([]string(nil), presetOrder...)
}

// Length thresholds (in runes) for Derive when no keyword matches.
const (
	shortText = 6
	longText  = 60
)

// Derive picks a preset from mood keywords in the text, falling back to a
// rule on text length. Keywords match whole words for Latin text and
// substrings for Hangul.
func Derive(text string) Theme {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r < 0x80
	})
	for _, name := range presetOrder {
		for _, kw := range presets[name].keywords {
			if matchKeyword(lower, words, kw) {
				return presets[name].theme.Normalize()
			}
		}
	}
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	switch {
	case n == 0:
		return Default()
	case n <= shortText:
		return presets["energetic"].theme.Normalize()
	case n >= longText:
		return presets["calm"].theme.Normalize()
	default:
		return presets["joyful"].theme.Normalize()
	}
}

func matchKeyword(lower string, words []string, kw string) bool {
	if kw[0] >= 0x80 {
		return strings.Contains(lower, kw)
	}
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}
