package synth

import (
	"math"

	"github.com/cbegin/morsewave-go/internal/lfo"
)

// ChordSize is the number of sustained drone tones.
const ChordSize = 3

// ChordTones stacks scale degrees rotation, rotation+2 and rotation+4 one
// octave below base. Degrees that wrap past the end of the scale move up an
// octave so the chord stays in root position order.
func ChordTones(scale []int, base float64, rotation int) [ChordSize]float64 {
	var out [ChordSize]float64
	if len(scale) == 0 {
		scale = []int{0}
	}
	n := len(scale)
	rotation = ((rotation % n) + n) % n
	for k := range out {
		pos := rotation + 2*k
		st := scale[pos%n] + 12*(pos/n)
		out[k] = base / 2 * math.Pow(2, float64(st)/12)
	}
	return out
}

// Drone is the sustained pad chord. It fades in from Start over fadeIn
// frames and fades out so it is silent at End.
type Drone struct {
	Start, End int64

	fadeIn     int64
	fadeOut    int64
	sampleRate float64
	freqs      [ChordSize]float64
	phases     [ChordSize]float64
	shimmer    [ChordSize]lfo.LFO
}

// NewDrone builds a drone over [start, end). Fades longer than half the
// span are shortened so fade-in and fade-out never overlap.
func NewDrone(freqs [ChordSize]float64, start, end, fadeIn, fadeOut int64, sampleRate int) *Drone {
	span := end - start
	if span < 2 {
		span = 2
		end = start + span
	}
	if fadeIn > span/2 {
		fadeIn = span / 2
	}
	if fadeOut > span-fadeIn {
		fadeOut = span - fadeIn
	}
	if fadeIn < 1 {
		fadeIn = 1
	}
	if fadeOut < 1 {
		fadeOut = 1
	}
	d := &Drone{
		Start:      start,
		End:        end,
		fadeIn:     fadeIn,
		fadeOut:    fadeOut,
		sampleRate: float64(sampleRate),
		freqs:      freqs,
	}
	for i := range d.shimmer {
		d.shimmer[i] = lfo.New(lfo.ShapeSine, 0.13+0.07*float64(i), 0.25, sampleRate).WithPhase(float64(i) / ChordSize)
	}
	return d
}

// Level returns the fade gain at frame.
func (d *Drone) Level(frame int64) float64 {
	if frame < d.Start || frame >= d.End {
		return 0
	}
	g := 1.0
	if n := frame - d.Start; n < d.fadeIn {
		g = float64(n) / float64(d.fadeIn)
	}
	if left := d.End - frame; left <= d.fadeOut {
		g *= float64(left-1) / float64(d.fadeOut)
	}
	return g
}

// Render returns the mono drone sample for frame.
func (d *Drone) Render(frame int64) float64 {
	g := d.Level(frame)
	if frame < d.Start || frame >= d.End {
		return 0
	}
	var sig float64
	for i := range d.freqs {
		amp := 1 + d.shimmer[i].Next()
		sig += math.Sin(twoPi*d.phases[i]) * amp
		d.phases[i] = advance(d.phases[i], d.freqs[i], d.sampleRate)
	}
	return sig / ChordSize * g
}

func (d *Drone) Done(frame int64) bool { return frame >= d.End }
