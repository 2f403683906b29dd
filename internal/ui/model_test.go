package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cbegin/morsewave-go/internal/morse"
	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
)

type fakeClock struct {
	elapsed float64
	running bool
}

func (c *fakeClock) Elapsed() float64 { return c.elapsed }
func (c *fakeClock) IsRunning() bool  { return c.running }

func newTestModel(text string, clock ClockReader) Model {
	th := theme.Default()
	return NewModel(Config{
		Text:   text,
		Morse:  morse.Encode(text).Morse,
		Events: timeline.Generate(text, th),
		Theme:  th,
		Clock:  clock,
	})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModel(t *testing.T) {
	m := newTestModel("SOS", &fakeClock{})
	if m.active != -1 || m.running || m.done {
		t.Errorf("unexpected initial state: active=%d running=%v done=%v", m.active, m.running, m.done)
	}
	if m.total <= timeline.PaddingDuration {
		t.Errorf("total = %f, want more than padding", m.total)
	}
	if m.Init() == nil {
		t.Error("expected Init to start the frame tick")
	}
}

func TestUnitGlyphs(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "SOS", want: "SOS"},
		{text: "a b", want: "A B"},
		{text: "한", want: "ㅎㅏㄴ"},
		{text: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			events := timeline.Generate(tc.text, theme.Default())
			glyphs, owner := unitGlyphs(events)
			if string(glyphs) != tc.want {
				t.Fatalf("glyphs = %q, want %q", string(glyphs), tc.want)
			}
			if owner[len(owner)-1] != -1 {
				t.Fatalf("padding should not own a glyph")
			}
		})
	}
}

func TestTickSamplesClock(t *testing.T) {
	clock := &fakeClock{}
	m := newTestModel("SOS", clock)

	next, cmd := m.Update(tickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected tick to schedule the next frame")
	}
	if m.running || m.active != -1 {
		t.Fatalf("idle clock produced active=%d", m.active)
	}

	// S is three dots; 0.05s is inside the first one.
	clock.running = true
	clock.elapsed = 0.05
	next, _ = m.Update(tickMsg{})
	m = next.(Model)
	if m.active != 0 || m.activeGlyph() != 0 {
		t.Fatalf("active = %d glyph %d, want 0/0", m.active, m.activeGlyph())
	}

	// Second S starts after S (0.5s) and a char gap (0.3s) plus O (1.1s) and a gap.
	clock.elapsed = 2.25
	next, _ = m.Update(tickMsg{})
	m = next.(Model)
	if m.activeGlyph() != 2 {
		t.Fatalf("glyph at %f = %d, want 2", clock.elapsed, m.activeGlyph())
	}
}

func TestStripDrawsDotsAndDashes(t *testing.T) {
	m := newTestModel("ET", &fakeClock{})
	m.width = 20
	m.elapsed = 0.05
	cells := m.stripCells()
	head := m.width / 2
	if cells[head] != '▀' {
		t.Fatalf("playhead on a dot = %q", cells[head])
	}
	for c := 0; c < head-1; c++ {
		if cells[c] != ' ' {
			t.Fatalf("cell %d before the start = %q", c, cells[c])
		}
	}

	// T's dash starts at 0.4s.
	m.elapsed = 0.55
	cells = m.stripCells()
	if cells[head] != '█' {
		t.Fatalf("playhead on a dash = %q", cells[head])
	}
}

func TestDoneMsgQuits(t *testing.T) {
	m := newTestModel("E", &fakeClock{running: true})
	next, cmd := m.Update(DoneMsg{})
	m = next.(Model)
	if !isQuit(cmd) {
		t.Fatal("expected DoneMsg to quit")
	}
	if !m.done || m.elapsed != m.total {
		t.Fatalf("done=%v elapsed=%f total=%f", m.done, m.elapsed, m.total)
	}
	if !strings.Contains(m.View(), "done") {
		t.Errorf("view should report completion")
	}
}

func TestQuitKeyStopsPlayback(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			stopped := 0
			m := newTestModel("E", &fakeClock{})
			m.cfg.Stop = func() error { stopped++; return nil }
			next, cmd := m.Update(key)
			if !isQuit(cmd) {
				t.Fatal("expected quit")
			}
			if stopped != 1 {
				t.Fatalf("stop called %d times", stopped)
			}
			if !next.(Model).quitting {
				t.Error("expected quitting")
			}
		})
	}
}

func TestVolumeKeys(t *testing.T) {
	vol := 0.98
	m := newTestModel("E", &fakeClock{})
	m.cfg.Volume = func() float64 { return vol }
	m.cfg.SetVolume = func(v float64) { vol = v }

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if vol != 1 {
		t.Fatalf("volume = %f, want clamp at 1", vol)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if vol < 0.899 || vol > 0.901 {
		t.Fatalf("volume = %f, want 0.9", vol)
	}
}

func TestViewShowsThemeAndMorse(t *testing.T) {
	m := newTestModel("SOS", &fakeClock{})
	view := m.View()
	for _, want := range []string{"neutral", "... --- ...", "waiting", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShowsMessageText(t *testing.T) {
	m := newTestModel("hello world\nsecond line", &fakeClock{})
	view := m.View()
	if !strings.Contains(view, "hello world") {
		t.Fatalf("view does not show the message:\n%s", view)
	}
	if strings.Contains(view, "second line") {
		t.Fatalf("view shows more than the first line:\n%s", view)
	}

	m.width = 8
	if view := m.View(); !strings.Contains(view, "hello w…") {
		t.Fatalf("long message not truncated to the width:\n%s", view)
	}
}

func TestErrMsgShowsError(t *testing.T) {
	m := newTestModel("E", &fakeClock{})
	next, cmd := m.Update(ErrMsg{Err: errors.New("device lost")})
	if !isQuit(cmd) {
		t.Fatal("expected quit on error")
	}
	if !strings.Contains(next.(Model).View(), "device lost") {
		t.Error("view should show the error")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
