// Package morse turns text into Morse-codable units.
//
// Characters without a mapping are dropped without error: a stray emoji or
// symbol in typed input must never break a preview.
package morse

import (
	"strings"
	"unicode"
)

// UnitKind classifies a decomposed unit.
type UnitKind int

const (
	UnitLetter UnitKind = iota + 1
	UnitDigit
	UnitPunct
	UnitJamo
	UnitWordSpace
)

func (k UnitKind) String() string {
	switch k {
	case UnitLetter:
		return "letter"
	case UnitDigit:
		return "digit"
	case UnitPunct:
		return "punct"
	case UnitJamo:
		return "jamo"
	case UnitWordSpace:
		return "space"
	default:
		return "unknown"
	}
}

// Unit is one Morse-codable element of the input. Code is empty for word
// spaces.
type Unit struct {
	Text rune
	Kind UnitKind
	Code string
}

// Result is the output of Encode.
type Result struct {
	Units []Unit
	Morse string
}

// Lookup returns the code for a single character or primitive jamo.
// Letters are matched case-insensitively.
func Lookup(r rune) (string, bool) {
	if code, ok := jamo[r]; ok {
		return code, true
	}
	code, ok := latin[unicode.ToUpper(r)]
	return code, ok
}

// Encode decomposes text into units in input order.
func Encode(text string) Result {
	var units []Unit
	for _, r := range text {
		r = unicode.ToUpper(r)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			units = append(units, Unit{Text: ' ', Kind: UnitWordSpace})
		case IsHangulSyllable(r):
			parts, _ := DecomposeHangul(r)
			units = appendJamo(units, parts)
		case isCompatJamo(r):
			units = appendJamo(units, appendPrimitive(nil, r))
		default:
			code, ok := latin[r]
			if !ok {
				continue
			}
			units = append(units, Unit{Text: r, Kind: latinKind(r), Code: code})
		}
	}
	return Result{Units: units, Morse: render(units)}
}

func appendJamo(dst []Unit, parts []rune) []Unit {
	for _, j := range parts {
		code, ok := jamo[j]
		if !ok {
			continue
		}
		dst = append(dst, Unit{Text: j, Kind: UnitJamo, Code: code})
	}
	return dst
}

func latinKind(r rune) UnitKind {
	switch {
	case r >= 'A' && r <= 'Z':
		return UnitLetter
	case r >= '0' && r <= '9':
		return UnitDigit
	default:
		return UnitPunct
	}
}

func render(units []Unit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteByte(' ')
		}
		if u.Kind == UnitWordSpace {
			b.WriteByte('/')
			continue
		}
		b.WriteString(u.Code)
	}
	return b.String()
}
