package morsewave

import (
	"math/rand/v2"

	intseq "github.com/cbegin/morsewave-go/internal/sequencer"
	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
)

// RenderTimeline renders events through the playback graph without an
// output device. The result is interleaved stereo covering the whole
// timeline, with event time zero at the first frame. seed picks the drone
// chord rotation.
func RenderTimeline(events []timeline.Event, th theme.Theme, sampleRate int, seed uint64) []float32 {
	if sampleRate <= 0 || len(events) == 0 {
		return nil
	}
	th = th.Normalize()
	opts := intseq.DefaultOptions()
	opts.EchoDelay = echoDelay(th)
	g := intseq.NewGraph(sampleRate, opts)
	rng := rand.New(rand.NewPCG(seed, 0))
	scheduleTimeline(g, events, th, 0, rng.IntN(len(th.Scale)))

	out := make([]float32, g.Frames(timeline.Total(events))*2)
	const block = 1024 * 2
	for i := 0; i < len(out); i += block {
		g.Process(out[i:min(i+block, len(out))])
	}
	return out
}
