// Package timeline converts text into a gap-free sequence of timed note and
// silence events.
package timeline

import "sort"

type EventKind int

const (
	EventNote EventKind = iota + 1
	EventSilence
)

func (k EventKind) String() string {
	switch k {
	case EventNote:
		return "note"
	case EventSilence:
		return "silence"
	default:
		return "unknown"
	}
}

// Symbol is the Morse element an event renders. Padding carries SymbolNone.
type Symbol int

const (
	SymbolNone Symbol = iota
	SymbolDot
	SymbolDash
	SymbolElementSpace
	SymbolCharSpace
	SymbolWordSpace
)

var symbolNames = [...]string{"none", "dot", "dash", "element-space", "char-space", "word-space"}

func (s Symbol) String() string {
	if s < 0 || int(s) >= len(symbolNames) {
		return "unknown"
	}
	return symbolNames[s]
}

// Event is one timeline entry. Start and Duration are in seconds relative to
// the timeline origin. Frequency is set on notes only; Source is the unit
// that produced the event (0 for word spaces and padding).
type Event struct {
	Kind      EventKind
	Start     float64
	Duration  float64
	Symbol    Symbol
	Frequency float64
	Source    rune
}

// End returns Start + Duration.
func (e Event) End() float64 { return e.Start + e.Duration }

func (e Event) IsNote() bool { return e.Kind == EventNote }

// Total returns the duration of the whole timeline.
func Total(events []Event) float64 {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].End()
}

// ActiveIndex returns the index of the event whose [Start, End) contains
// elapsed, or -1.
func ActiveIndex(events []Event, elapsed float64) int {
	if len(events) == 0 || elapsed < 0 {
		return -1
	}
	i := sort.Search(len(events), func(i int) bool { return events[i].End() > elapsed })
	if i == len(events) || events[i].Start > elapsed {
		return -1
	}
	return i
}

// Notes returns only the note events, in order.
func Notes(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if e.IsNote() {
			out = append(out, e)
		}
	}
	return out
}

// Progress maps elapsed time onto [0, 1].
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := elapsed / total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
