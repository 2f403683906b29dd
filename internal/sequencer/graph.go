// Package sequencer is the audio output graph: tones scheduled on a frame
// clock, mixed through melody and pad buses into a master stage.
package sequencer

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cbegin/morsewave-go/internal/effects"
	"github.com/cbegin/morsewave-go/internal/synth"
)

type Options struct {
	MasterGain float64
	MelodyGain float64
	PadGain    float64
	PadCutoff  float64 // Hz
	PadRoom    float32 // reverb mix on the pad; 0 disables it
	EchoDelay  float64 // seconds; 0 disables the melody echo
	EchoMix    float32
}

// DefaultOptions keeps the pad well under the melody.
func DefaultOptions() Options {
	return Options{
		MasterGain: 0.9,
		MelodyGain: 0.8,
		PadGain:    0.12,
		PadCutoff:  900,
		PadRoom:    0.35,
		EchoDelay:  0.3,
		EchoMix:    0.25,
	}
}

// Graph renders scheduled tones and the drone. The frame counter is the
// audio clock: it advances only as the output pulls samples.
type Graph struct {
	mu         sync.Mutex
	sampleRate int
	frame      atomic.Int64
	end        atomic.Int64
	closed     atomic.Bool
	masterGain atomic.Uint64

	melodyGain float32
	padGain    float32
	pending    []*synth.Tone // sorted by Start
	next       int
	active     []*synth.Tone
	drone      *synth.Drone
	fadeStart  int64
	fadeEnd    int64 // 0 when no fade-out is running

	melodyFX *effects.Chain
	padFX    *effects.Chain
	masterFX *effects.Chain
}

func NewGraph(sampleRate int, opts Options) *Graph {
	g := &Graph{
		sampleRate: sampleRate,
		melodyGain: float32(opts.MelodyGain),
		padGain:    float32(opts.PadGain),
		melodyFX:   effects.NewChain(),
		padFX:      effects.NewChain(effects.NewLowPass(sampleRate, opts.PadCutoff)),
		masterFX:   effects.NewChain(effects.NewLimiter(sampleRate, -1, 2, 120)),
	}
	if opts.PadRoom > 0 {
		g.padFX.Add(effects.NewRoom(sampleRate, 0.8, 2.5, opts.PadRoom))
	}
	if opts.EchoDelay > 0 {
		g.melodyFX.Add(effects.NewEcho(sampleRate, opts.EchoDelay, 0.35, opts.EchoMix))
	}
	g.SetMasterGain(opts.MasterGain)
	return g
}

func (g *Graph) SampleRate() int { return g.sampleRate }

// Frame returns the number of frames rendered so far.
func (g *Graph) Frame() int64 { return g.frame.Load() }

// Now returns the audio clock in seconds.
func (g *Graph) Now() float64 {
	return float64(g.frame.Load()) / float64(g.sampleRate)
}

// Frames converts seconds to the nearest frame count.
func (g *Graph) Frames(sec float64) int64 {
	return int64(math.Round(sec * float64(g.sampleRate)))
}

// Schedule queues a tone. Tones may be scheduled in any order.
func (g *Graph) Schedule(t *synth.Tone) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed.Load() {
		return
	}
	rest := g.pending[g.next:]
	i := sort.Search(len(rest), func(i int) bool { return rest[i].Start > t.Start })
	i += g.next
	g.pending = append(g.pending, nil)
	copy(g.pending[i+1:], g.pending[i:])
	g.pending[i] = t
}

// SetDrone installs the pad chord, replacing any previous one.
func (g *Graph) SetDrone(d *synth.Drone) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed.Load() {
		return
	}
	g.drone = d
}

// SetEnd marks the frame at which the graph reports Finished.
func (g *Graph) SetEnd(frame int64) { g.end.Store(frame) }

// Finished reports whether the clock has passed the end frame.
func (g *Graph) Finished() bool {
	end := g.end.Load()
	return g.closed.Load() || (end > 0 && g.frame.Load() >= end)
}

func (g *Graph) SetMasterGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	g.masterGain.Store(math.Float64bits(gain))
}

func (g *Graph) MasterGain() float64 {
	return math.Float64frombits(g.masterGain.Load())
}

// FadeOut ramps the master to silence over the next frames frames and
// ends the graph there. A fade already running is only ever shortened.
func (g *Graph) FadeOut(frames int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	frames = max(frames, 1)
	start := g.frame.Load()
	end := start + frames
	if g.fadeEnd != 0 && g.fadeEnd <= end {
		return
	}
	g.fadeStart, g.fadeEnd = start, end
	if cur := g.end.Load(); cur == 0 || cur > end {
		g.end.Store(end)
	}
}

// fadeGain is the fade-out multiplier for frame.
func (g *Graph) fadeGain(frame int64) float32 {
	switch {
	case g.fadeEnd == 0:
		return 1
	case frame >= g.fadeEnd:
		return 0
	}
	return float32(g.fadeEnd-frame) / float32(g.fadeEnd-g.fadeStart)
}

// Voices returns the number of tones not yet finished, plus the drone.
func (g *Graph) Voices() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.pending) - g.next + len(g.active)
	if g.drone != nil {
		n++
	}
	return n
}

// Close silences the graph and drops every scheduled tone. Further
// Process calls emit silence.
func (g *Graph) Close() {
	g.closed.Store(true)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending, g.active, g.drone, g.next = nil, nil, nil, 0
}

// Process fills dst with interleaved stereo frames and advances the clock.
func (g *Graph) Process(dst []float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	frames := len(dst) / 2
	if g.closed.Load() {
		clear(dst)
		return
	}
	start := g.frame.Load()
	master := float32(g.MasterGain())
	for i := 0; i < frames; i++ {
		frame := start + int64(i)
		for g.next < len(g.pending) && g.pending[g.next].Start <= frame {
			g.active = append(g.active, g.pending[g.next])
			g.pending[g.next] = nil
			g.next++
		}

		var mel float64
		n := 0
		for _, t := range g.active {
			if t.Done(frame) {
				continue
			}
			mel += t.Render(frame)
			g.active[n] = t
			n++
		}
		clear(g.active[n:])
		g.active = g.active[:n]

		m := float32(mel) * g.melodyGain
		ml, mr := g.melodyFX.Process(m, m)

		var pl, pr float32
		if g.drone != nil {
			if g.drone.Done(frame) {
				g.drone = nil
			} else {
				p := float32(g.drone.Render(frame)) * g.padGain
				pl, pr = g.padFX.Process(p, p)
			}
		}

		l, r := g.masterFX.Process((ml+pl)*master, (mr+pr)*master)
		fade := g.fadeGain(frame)
		dst[i*2] = l * fade
		dst[i*2+1] = r * fade
	}
	g.frame.Add(int64(frames))
}
