package morsewave

import (
	intseq "github.com/cbegin/morsewave-go/internal/sequencer"
	"github.com/cbegin/morsewave-go/internal/synth"
	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
)

// echoDelay is one dash long so repeats land on the Morse grid.
func echoDelay(th theme.Theme) float64 {
	return timeline.UnitTime(th) * timeline.DashUnits
}

// scheduleTimeline places the drone and every note of events on g, with
// event time zero at frame origin. th must be normalized.
func scheduleTimeline(g *intseq.Graph, events []timeline.Event, th theme.Theme, origin int64, rotation int) {
	sr := g.SampleRate()
	end := origin + g.Frames(timeline.Total(events))

	chord := synth.ChordTones(th.Scale, th.BaseFrequency, rotation)
	fade := g.Frames(droneFade)
	g.SetDrone(synth.NewDrone(chord, origin, end, fade, fade, sr))

	patch := synth.PatchFor(th.Instrument, th.Waveform)
	for _, ev := range events {
		if !ev.IsNote() {
			continue
		}
		start := origin + g.Frames(ev.Start)
		length := g.Frames(ev.End()) - g.Frames(ev.Start)
		g.Schedule(synth.NewTone(patch, ev.Frequency, start, length, sr))
	}
	g.SetEnd(end)
}
