package morse

const (
	syllableFirst = 0xAC00
	syllableLast  = 0xD7A3
	jamoFirst     = 0x3131
	jamoLast      = 0x3163

	medialSpan = 588 // 21 medials * 28 finals
	finalSpan  = 28
)

// IsHangulSyllable reports whether r is a precomposed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= syllableFirst && r <= syllableLast
}

func isCompatJamo(r rune) bool {
	return r >= jamoFirst && r <= jamoLast
}

// DecomposeHangul splits a syllable into its primitive jamo in reading
// order: initial, medial, then the optional final. Compound jamo are
// expanded so every returned rune has a direct Morse code.
func DecomposeHangul(r rune) ([]rune, bool) {
	if !IsHangulSyllable(r) {
		return nil, false
	}
	offset := int(r - syllableFirst)
	parts := []rune{
		initials[offset/medialSpan],
		medials[(offset%medialSpan)/finalSpan],
	}
	if f := finals[offset%finalSpan]; f != 0 {
		parts = append(parts, f)
	}
	out := make([]rune, 0, len(parts)*2)
	for _, p := range parts {
		out = appendPrimitive(out, p)
	}
	return out, true
}

func appendPrimitive(dst []rune, j rune) []rune {
	if pair, ok := compound[j]; ok {
		return append(dst, pair[0], pair[1])
	}
	return append(dst, j)
}
