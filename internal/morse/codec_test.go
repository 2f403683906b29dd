package morse

import (
	"reflect"
	"testing"
)

func TestEncodeLatin(t *testing.T) {
	res := Encode("sos")
	if len(res.Units) != 3 {
		t.Fatalf("units = %d, want 3", len(res.Units))
	}
	if res.Morse != "... --- ..." {
		t.Fatalf("morse = %q", res.Morse)
	}
	for _, u := range res.Units {
		if u.Kind != UnitLetter {
			t.Fatalf("unit %q kind = %v, want letter", u.Text, u.Kind)
		}
	}
}

func TestEncodeIsCaseInsensitive(t *testing.T) {
	a := Encode("Hello World")
	b := Encode("HELLO WORLD")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("case changed result:\n%+v\n%+v", a, b)
	}
}

func TestEncodeWordSpace(t *testing.T) {
	res := Encode("A B")
	want := []UnitKind{UnitLetter, UnitWordSpace, UnitLetter}
	if len(res.Units) != len(want) {
		t.Fatalf("units = %+v", res.Units)
	}
	for i, k := range want {
		if res.Units[i].Kind != k {
			t.Fatalf("unit %d kind = %v, want %v", i, res.Units[i].Kind, k)
		}
	}
	if res.Units[1].Code != "" {
		t.Fatalf("word space carries code %q", res.Units[1].Code)
	}
	if res.Morse != ".- / -..." {
		t.Fatalf("morse = %q", res.Morse)
	}
}

func TestEncodeDropsUnmapped(t *testing.T) {
	for _, tc := range []struct {
		with, without string
	}{
		{"S🙂OS", "SOS"},
		{"a#b", "ab"},
		{"~", ""},
		{"€12", "12"},
	} {
		t.Run(tc.with, func(t *testing.T) {
			got := Encode(tc.with)
			want := Encode(tc.without)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Encode(%q) = %+v, want %+v", tc.with, got, want)
			}
		})
	}
}

func TestEncodePunctuationAndDigits(t *testing.T) {
	for _, r := range `.,?'!/()&:;=+-_"$@` {
		res := Encode(string(r))
		if len(res.Units) != 1 || res.Units[0].Kind != UnitPunct {
			t.Fatalf("%q: units = %+v", r, res.Units)
		}
	}
	for r := '0'; r <= '9'; r++ {
		res := Encode(string(r))
		if len(res.Units) != 1 || res.Units[0].Kind != UnitDigit {
			t.Fatalf("%q: units = %+v", r, res.Units)
		}
	}
}

func TestDecomposeHangul(t *testing.T) {
	for _, tc := range []struct {
		in   rune
		want []rune
	}{
		{'가', []rune{'ㄱ', 'ㅏ'}},
		{'한', []rune{'ㅎ', 'ㅏ', 'ㄴ'}},
		{'닭', []rune{'ㄷ', 'ㅏ', 'ㄹ', 'ㄱ'}},
		{'꽉', []rune{'ㄱ', 'ㄱ', 'ㅗ', 'ㅏ', 'ㄱ'}},
		{'의', []rune{'ㅇ', 'ㅡ', 'ㅣ'}},
	} {
		t.Run(string(tc.in), func(t *testing.T) {
			got, ok := DecomposeHangul(tc.in)
			if !ok {
				t.Fatalf("not decomposed")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %q, want %q", string(got), string(tc.want))
			}
			for _, j := range got {
				if _, ok := Lookup(j); !ok {
					t.Fatalf("primitive %q has no code", j)
				}
			}
		})
	}
	if _, ok := DecomposeHangul('A'); ok {
		t.Fatalf("latin letter decomposed")
	}
}

func TestEncodeHangulSyllablesInPlace(t *testing.T) {
	res := Encode("A한B")
	var got []rune
	for _, u := range res.Units {
		got = append(got, u.Text)
	}
	want := []rune{'A', 'ㅎ', 'ㅏ', 'ㄴ', 'B'}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("units %q, want %q", string(got), string(want))
	}
	if res.Units[2].Kind != UnitJamo || res.Units[2].Code != "." {
		t.Fatalf("medial unit = %+v", res.Units[2])
	}
}

func TestEncodeCompatJamo(t *testing.T) {
	res := Encode("ㅘ")
	if len(res.Units) != 2 || res.Units[0].Text != 'ㅗ' || res.Units[1].Text != 'ㅏ' {
		t.Fatalf("units = %+v", res.Units)
	}
}

func TestEveryCompoundSplitsIntoPrimitives(t *testing.T) {
	for c, pair := range compound {
		for _, p := range pair {
			if _, ok := jamo[p]; !ok {
				t.Errorf("%q splits into %q without a code", c, p)
			}
		}
	}
	for _, set := range [][]rune{initials[:], medials[:], finals[1:]} {
		for _, j := range set {
			if _, ok := jamo[j]; ok {
				continue
			}
			if _, ok := compound[j]; !ok {
				t.Errorf("%q is neither primitive nor compound", j)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	text := "Hello, 세계! 123"
	first := Encode(text)
	for i := 0; i < 5; i++ {
		if got := Encode(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs", i)
		}
	}
}
