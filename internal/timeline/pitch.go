package timeline

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// PitchHash maps a note's identity to a pseudo-random word. It must be a
// pure function: the same arguments always produce the same value.
//
// unit is the source rune, position its index among the decomposed units,
// element the symbol index within its code and length the number of units.
type PitchHash func(unit rune, position, element, length int) uint32

// DefaultHash is FNV-1a over the four inputs.
func DefaultHash(unit rune, position, element, length int) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(unit))
	binary.LittleEndian.PutUint32(buf[4:], uint32(position))
	binary.LittleEndian.PutUint32(buf[8:], uint32(element))
	binary.LittleEndian.PutUint32(buf[12:], uint32(length))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return h.Sum32()
}

// Variation probabilities in percent.
const (
	octaveChance = 30
	detuneChance = 15
)

var octaveShifts = [...]int{12, -12, 24}

type pitcher struct {
	hash      PitchHash
	base      float64
	scale     []int
	variation bool
}

func (p pitcher) semitone(unit rune, position, element, length int) int {
	h := p.hash(unit, position, element, length)
	idx := int((uint64(h) + uint64(position)) % uint64(len(p.scale)))
	st := p.scale[idx]
	if !p.variation {
		return st
	}
	if (h>>8)%100 < octaveChance {
		st += octaveShifts[(h>>12)%uint32(len(octaveShifts))]
	}
	if (h>>16)%100 < detuneChance {
		d := 1 + int((h>>24)%3)
		if (h>>23)&1 == 1 {
			d = -d
		}
		st += d
	}
	return st
}

func (p pitcher) frequency(unit rune, position, element, length int) float64 {
	return p.base * math.Pow(2, float64(p.semitone(unit, position, element, length))/12)
}
