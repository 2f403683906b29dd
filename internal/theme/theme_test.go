package theme

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNormalizeSubstitutesDefaults(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   Theme
	}{
		{"zero value", Theme{}},
		{"negative tempo", Theme{TempoMultiplier: -1, BaseFrequency: 300, Scale: []int{0}}},
		{"nan frequency", Theme{TempoMultiplier: 1, BaseFrequency: math.NaN(), Scale: []int{0}}},
		{"inf tempo", Theme{TempoMultiplier: math.Inf(1), BaseFrequency: 300, Scale: []int{0}}},
		{"bad enums", Theme{Waveform: 42, Instrument: -3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.TempoMultiplier <= 0 || math.IsInf(got.TempoMultiplier, 0) {
				t.Fatalf("tempo = %v", got.TempoMultiplier)
			}
			if got.BaseFrequency <= 0 || math.IsNaN(got.BaseFrequency) {
				t.Fatalf("base frequency = %v", got.BaseFrequency)
			}
			if len(got.Scale) == 0 {
				t.Fatalf("empty scale survived")
			}
			if got.Waveform.String() == "unknown" || got.Instrument.String() == "unknown" {
				t.Fatalf("enums not repaired: %v %v", got.Waveform, got.Instrument)
			}
		})
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	in := Theme{
		Mood: "x", Waveform: WaveSquare, BaseFrequency: 220, TempoMultiplier: 2,
		Scale: []int{0, 5}, Instrument: InstrumentViolin,
	}
	got := in.Normalize()
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("Normalize changed a valid theme: %+v", got)
	}
}

func TestNormalizeCopiesScale(t *testing.T) {
	scale := []int{0, 4, 7}
	got := Theme{Scale: scale}.Normalize()
	scale[0] = 99
	if got.Scale[0] != 0 {
		t.Fatalf("normalized theme shares caller's scale")
	}
}

func TestParseEnums(t *testing.T) {
	for _, w := range []Waveform{WaveSine, WaveSquare, WaveSawtooth, WaveTriangle} {
		got, err := ParseWaveform(w.String())
		if err != nil || got != w {
			t.Fatalf("ParseWaveform(%q) = %v, %v", w, got, err)
		}
	}
	if got, _ := ParseWaveform(" SAW "); got != WaveSawtooth {
		t.Fatalf("saw alias = %v", got)
	}
	if _, err := ParseWaveform("noise"); !errors.Is(err, ErrUnknownWaveform) {
		t.Fatalf("err = %v", err)
	}
	for _, in := range []Instrument{InstrumentPiano, InstrumentMarimba, InstrumentViolin, InstrumentSynth} {
		got, err := ParseInstrument(in.String())
		if err != nil || got != in {
			t.Fatalf("ParseInstrument(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseInstrument("tuba"); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("err = %v", err)
	}
}

func TestScaleByName(t *testing.T) {
	for _, name := range ScaleNames() {
		s, err := ScaleByName(name)
		if err != nil || len(s) == 0 {
			t.Fatalf("%s: %v %v", name, s, err)
		}
		s[0] = 100
		again, _ := ScaleByName(name)
		if again[0] == 100 {
			t.Fatalf("%s: preset scale mutated through copy", name)
		}
	}
	if _, err := ScaleByName("bebop"); !errors.Is(err, ErrUnknownScale) {
		t.Fatalf("err = %v", err)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range Presets() {
		th, err := Preset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if th.Mood != name {
			t.Fatalf("%s: mood = %q", name, th.Mood)
		}
		if !reflect.DeepEqual(th, th.Normalize()) {
			t.Fatalf("%s: preset is not normalized", name)
		}
	}
	if _, err := Preset("angry"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v", err)
	}
}

func TestDerive(t *testing.T) {
	for _, tc := range []struct {
		text string
		mood string
	}{
		{"I am so happy today", "joyful"},
		{"Rain falls on the roof", "melancholy"},
		{"SOS", "energetic"},
		{"a secret kept at night", "mysterious"},
		{"꿈을 꾸는 하늘", "dreamy"},
		{"비밀", "mysterious"},
		{"hi", "energetic"},
		{"this sentence has no mood words at all", "joyful"},
		{"", "neutral"},
		{"goal keeper at work", "joyful"},
	} {
		t.Run(tc.text, func(t *testing.T) {
			if got := Derive(tc.text).Mood; got != tc.mood {
				t.Fatalf("Derive(%q).Mood = %q, want %q", tc.text, got, tc.mood)
			}
		})
	}
}

func TestDeriveLongTextIsCalm(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps jumping far"
	if got := Derive(text).Mood; got != "calm" {
		t.Fatalf("mood = %q", got)
	}
}
