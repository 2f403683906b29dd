// Package ui is the terminal renderer: a scrolling Morse strip kept in sync
// with the playback clock.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
)

const (
	frameInterval = time.Second / 30
	cellsPerUnit  = 2
	defaultWidth  = 64
	barWidth      = 40
	volumeStep    = 0.05
)

// ClockReader is sampled once per frame.
type ClockReader interface {
	Elapsed() float64
	IsRunning() bool
}

type Config struct {
	Text   string
	Morse  string
	Events []timeline.Event
	Theme  theme.Theme
	Clock  ClockReader
	// Stop is called when the user quits.
	Stop func() error
	// Volume reads and sets the master volume. Either may be nil.
	Volume    func() float64
	SetVolume func(float64)
}

// Model represents the TUI state
type Model struct {
	cfg    Config
	th     theme.Theme
	total  float64
	cell   float64
	glyphs []rune
	owner  []int
	styles styles

	elapsed  float64
	active   int
	running  bool
	done     bool
	quitting bool
	err      error
	width    int
}

type tickMsg time.Time

// DoneMsg tells the model playback has completed.
type DoneMsg struct{}

// ErrMsg reports a playback failure and quits.
type ErrMsg struct{ Err error }

func NewModel(cfg Config) Model {
	th := cfg.Theme.Normalize()
	glyphs, owner := unitGlyphs(cfg.Events)
	return Model{
		cfg:    cfg,
		th:     th,
		total:  timeline.Total(cfg.Events),
		cell:   timeline.UnitTime(th) / cellsPerUnit,
		glyphs: glyphs,
		owner:  owner,
		styles: newStyles(th),
		active: -1,
		width:  defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-2, 16)
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.sample()
		return m, tick()
	case DoneMsg:
		m.done = true
		m.running = false
		m.elapsed = m.total
		m.active = -1
		return m, tea.Quit
	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		if m.cfg.Stop != nil {
			if err := m.cfg.Stop(); err != nil {
				m.err = err
			}
		}
		return m, tea.Quit
	case "up", "+":
		m.nudgeVolume(volumeStep)
	case "down", "-":
		m.nudgeVolume(-volumeStep)
	}
	return m, nil
}

func (m *Model) nudgeVolume(delta float64) {
	if m.cfg.Volume == nil || m.cfg.SetVolume == nil {
		return
	}
	v := min(max(m.cfg.Volume()+delta, 0), 1)
	m.cfg.SetVolume(v)
}

// sample reads the clock once. The clock reports 0 while idle, so elapsed
// is only trusted while running.
func (m *Model) sample() {
	if m.cfg.Clock == nil {
		return
	}
	m.running = m.cfg.Clock.IsRunning()
	if !m.running {
		return
	}
	m.elapsed = m.cfg.Clock.Elapsed()
	m.active = timeline.ActiveIndex(m.cfg.Events, m.elapsed)
}

// activeGlyph is the index into glyphs of the unit being keyed, or -1.
func (m Model) activeGlyph() int {
	if m.active < 0 || m.active >= len(m.owner) {
		return -1
	}
	return m.owner[m.active]
}

func (m Model) View() string {
	if m.quitting {
		return "Stopping...\n"
	}
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("morsewave"))
	b.WriteString(s.faint.Render(fmt.Sprintf("  %s · %s · %s", m.th.Mood, m.th.Instrument, m.th.Waveform)))
	b.WriteString("\n\n")

	if msg := firstLine(m.cfg.Text); msg != "" {
		b.WriteString(s.text.Render(truncate(msg, m.width)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderGlyphs())
	b.WriteString("\n")
	b.WriteString(s.morse.Render(truncate(m.cfg.Morse, m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderStrip())
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", m.width/2))
	b.WriteString(s.active.Render("▲"))
	b.WriteString("\n\n")

	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(s.faint.Render("q quit · ↑/↓ volume"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderGlyphs() string {
	cur := m.activeGlyph()
	var b strings.Builder
	for i, g := range m.glyphs {
		txt := string(g)
		if i == cur {
			b.WriteString(m.styles.active.Render(txt))
		} else {
			b.WriteString(m.styles.text.Render(txt))
		}
	}
	return b.String()
}

// stripCells lays the timeline out around the playhead, which sits in the
// middle column. Dashes draw as full blocks, dots as half blocks.
func (m Model) stripCells() []rune {
	cells := make([]rune, m.width)
	head := m.width / 2
	for c := range cells {
		t := m.elapsed + (float64(c-head)+0.5)*m.cell
		cells[c] = ' '
		i := timeline.ActiveIndex(m.cfg.Events, t)
		if i < 0 || !m.cfg.Events[i].IsNote() {
			continue
		}
		if m.cfg.Events[i].Symbol == timeline.SymbolDash {
			cells[c] = '█'
		} else {
			cells[c] = '▀'
		}
	}
	return cells
}

func (m Model) renderStrip() string {
	cells := m.stripCells()
	head := m.width / 2
	return m.styles.past.Render(string(cells[:head])) +
		m.styles.active.Render(string(cells[head])) +
		m.styles.future.Render(string(cells[head+1:]))
}

func (m Model) renderProgress() string {
	p := timeline.Progress(m.elapsed, m.total)
	filled := int(p * barWidth)
	bar := m.styles.active.Render(strings.Repeat("━", filled)) +
		m.styles.faint.Render(strings.Repeat("─", barWidth-filled))
	return fmt.Sprintf("%s %5.1fs / %.1fs", bar, m.elapsed, m.total)
}

func (m Model) renderStatus() string {
	var state string
	switch {
	case m.err != nil:
		return m.styles.err.Render("error: " + m.err.Error())
	case m.done:
		state = "done"
	case m.running:
		state = "playing"
	default:
		state = "waiting"
	}
	if m.cfg.Volume != nil {
		state += fmt.Sprintf(" · vol %d%%", int(m.cfg.Volume()*100+0.5))
	}
	return m.styles.text.Render(state)
}

// unitGlyphs returns one glyph per keyed unit and, for each event, the
// glyph it belongs to. Word gaps are a space glyph; padding owns none.
func unitGlyphs(events []timeline.Event) ([]rune, []int) {
	var glyphs []rune
	owner := make([]int, len(events))
	open := false
	for i, ev := range events {
		switch ev.Symbol {
		case timeline.SymbolNone:
			owner[i] = -1
			open = false
			continue
		case timeline.SymbolWordSpace:
			glyphs = append(glyphs, ' ')
			owner[i] = len(glyphs) - 1
			open = false
			continue
		}
		if !open {
			glyphs = append(glyphs, ev.Source)
			open = true
		}
		owner[i] = len(glyphs) - 1
		if ev.Symbol == timeline.SymbolCharSpace {
			open = false
		}
	}
	return glyphs, owner
}

// firstLine is the message as shown above the glyphs.
func firstLine(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(s)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
