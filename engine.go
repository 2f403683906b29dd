// Package morsewave turns text into a timed Morse melody and plays it.
//
// An Engine generates timelines, schedules them on a fresh audio graph for
// every Play, and exposes a Clock that renderers sample to stay in sync with
// what the listener hears.
package morsewave

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	intaudio "github.com/cbegin/morsewave-go/internal/audio"
	intseq "github.com/cbegin/morsewave-go/internal/sequencer"
	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
)

// ErrAudioUnavailable wraps every failure to open the audio output.
var ErrAudioUnavailable = intaudio.ErrUnavailable

const (
	DefaultSampleRate = 48000
	DefaultLeadIn     = 100 * time.Millisecond
	droneFade         = 2.0 // seconds

	// stopFade ramps a stopped graph to silence; its output is closed
	// stopDrain later, once the device has played the ramp.
	stopFade  = 20 * time.Millisecond
	stopDrain = 150 * time.Millisecond
)

type (
	Output        = intaudio.Output
	SampleSource  = intaudio.SampleSource
	OutputFactory = intaudio.Factory
)

type State int

const (
	StateIdle State = iota
	StateScheduling
	StatePlaying
	StateCompleted
	StateStopped
)

var stateNames = [...]string{"idle", "scheduling", "playing", "completed", "stopped"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Timer is a pending completion callback.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a Timer that calls f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type EngineOption func(*engineConfig)

type engineConfig struct {
	output    OutputFactory
	leadIn    time.Duration
	afterFunc AfterFunc
	rng       *rand.Rand
	logger    *slog.Logger
	echo      bool
	volume    float64
	timeline  []timeline.Option
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		output:    intaudio.OpenDevice,
		leadIn:    DefaultLeadIn,
		afterFunc: systemAfterFunc,
		logger:    slog.New(slog.DiscardHandler),
		echo:      true,
		volume:    1,
	}
}

// WithOutput replaces the system audio device with another output.
func WithOutput(f OutputFactory) EngineOption {
	return func(cfg *engineConfig) {
		if f != nil {
			cfg.output = f
		}
	}
}

// WithLeadIn sets the gap between Play and the first scheduled frame.
func WithLeadIn(d time.Duration) EngineOption {
	return func(cfg *engineConfig) {
		if d >= 0 {
			cfg.leadIn = d
		}
	}
}

func WithAfterFunc(f AfterFunc) EngineOption {
	return func(cfg *engineConfig) {
		if f != nil {
			cfg.afterFunc = f
		}
	}
}

// WithRand seeds the drone chord rotation.
func WithRand(r *rand.Rand) EngineOption {
	return func(cfg *engineConfig) {
		cfg.rng = r
	}
}

func WithLogger(l *slog.Logger) EngineOption {
	return func(cfg *engineConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithEcho toggles the tempo-synced echo on the melody bus.
func WithEcho(enabled bool) EngineOption {
	return func(cfg *engineConfig) {
		cfg.echo = enabled
	}
}

func WithMasterVolume(volume float64) EngineOption {
	return func(cfg *engineConfig) {
		cfg.volume = max(volume, 0)
	}
}

// WithTimelineOptions passes options to every GenerateTimeline call.
func WithTimelineOptions(opts ...timeline.Option) EngineOption {
	return func(cfg *engineConfig) {
		cfg.timeline = append(cfg.timeline, opts...)
	}
}

// Resources counts what a playback holds open. Stopped playbacks still
// fading out count an output and a timer until they are closed.
type Resources struct {
	Outputs int
	Voices  int
	Timers  int
}

// Engine owns one playback at a time. All methods are safe for concurrent
// use.
type Engine struct {
	mu         sync.Mutex
	sampleRate int
	cfg        engineConfig
	rng        *rand.Rand
	log        *slog.Logger

	events []timeline.Event
	state  State
	gen    uint64
	id     uuid.UUID
	graph  *intseq.Graph
	out    Output
	timer  Timer
	total  float64
	volume float64
	clock  *Clock

	draining map[*drain]struct{}
}

// drain is a stopped playback still fading out on its output.
type drain struct {
	out   Output
	graph *intseq.Graph
}

func NewEngine(sampleRate int, opts ...EngineOption) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e := &Engine{
		sampleRate: sampleRate,
		cfg:        cfg,
		rng:        rng,
		log:        cfg.logger,
		volume:     cfg.volume,
		draining:   make(map[*drain]struct{}),
	}
	e.clock = &Clock{engine: e}
	return e, nil
}

func (e *Engine) SampleRate() int { return e.sampleRate }

// GenerateTimeline builds the events for text and keeps them for the next
// Play. It never touches a running playback.
func (e *Engine) GenerateTimeline(text string, th theme.Theme) []timeline.Event {
	events := timeline.Generate(text, th, e.cfg.timeline...)
	e.mu.Lock()
	e.events = events
	e.mu.Unlock()
	return events
}

// Timeline returns the events from the last GenerateTimeline call.
func (e *Engine) Timeline() []timeline.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events
}

// Play schedules the stored timeline on a new audio graph and starts the
// output. A running playback is stopped first. onComplete runs on the timer
// goroutine once the timeline has finished and the graph is torn down; it is
// not called after Stop.
func (e *Engine) Play(th theme.Theme, onComplete func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.teardownLocked(StateStopped, true); err != nil {
		e.log.Warn("closing previous output", "err", err)
	}
	e.state = StateIdle
	events := e.events
	notes := timeline.Notes(events)
	if len(notes) == 0 {
		e.log.Debug("nothing to play")
		return nil
	}

	e.state = StateScheduling
	th = th.Normalize()
	e.gen++
	gen := e.gen
	id := uuid.New()

	opts := intseq.DefaultOptions()
	opts.MasterGain *= e.volume
	if e.cfg.echo {
		opts.EchoDelay = echoDelay(th)
	} else {
		opts.EchoDelay = 0
	}
	graph := intseq.NewGraph(e.sampleRate, opts)
	origin := graph.Frame() + graph.Frames(e.cfg.leadIn.Seconds())
	total := timeline.Total(events)
	scheduleTimeline(graph, events, th, origin, e.rng.IntN(len(th.Scale)))

	e.log.Debug("scheduled playback",
		"playback_id", id,
		"notes", len(notes),
		"duration", total,
		"instrument", th.Instrument,
		"voices", graph.Voices(),
	)

	out, err := e.cfg.output(e.sampleRate, graph)
	if err != nil {
		graph.Close()
		e.state = StateIdle
		if errors.Is(err, ErrAudioUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	if err := out.Play(); err != nil {
		if cerr := out.Close(); cerr != nil {
			e.log.Warn("closing failed output", "playback_id", id, "err", cerr)
		}
		graph.Close()
		e.state = StateIdle
		if errors.Is(err, ErrAudioUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}

	e.graph = graph
	e.out = out
	e.id = id
	e.total = total
	e.state = StatePlaying
	wait := e.cfg.leadIn + time.Duration(total*float64(time.Second))
	e.timer = e.cfg.afterFunc(wait, func() { e.complete(gen, id, onComplete) })

	e.log.Info("playback started", "playback_id", id, "notes", len(notes), "duration", total)
	return nil
}

func (e *Engine) complete(gen uint64, id uuid.UUID, onComplete func()) {
	e.mu.Lock()
	if e.gen != gen || e.state != StatePlaying {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	err := e.teardownLocked(StateCompleted, false)
	e.mu.Unlock()

	if err != nil {
		e.log.Warn("closing output", "playback_id", id, "err", err)
	}
	e.log.Info("playback completed", "playback_id", id)
	if onComplete != nil {
		onComplete()
	}
}

// Stop cancels the current playback at once: the state, clock and
// completion timer reset before Stop returns. The graph fades out over
// stopFade and its output is closed in the background. It is a no-op when
// nothing is playing.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.id
	active := e.out != nil || e.graph != nil
	err := e.teardownLocked(StateStopped, true)
	if active {
		e.log.Info("playback stopped", "playback_id", id)
	}
	return err
}

// teardownLocked ends the current playback. With fade set, a live output
// is handed to a drain instead of being cut off.
func (e *Engine) teardownLocked(final State, fade bool) error {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.out == nil && e.graph == nil {
		return nil
	}
	var err error
	if fade && e.out != nil && e.graph != nil {
		e.graph.FadeOut(e.graph.Frames(stopFade.Seconds()))
		d := &drain{out: e.out, graph: e.graph}
		e.draining[d] = struct{}{}
		e.cfg.afterFunc(stopDrain, func() { e.finishDrain(d) })
		e.out, e.graph = nil, nil
	}
	if e.out != nil {
		e.out.Pause()
		err = e.out.Close()
		e.out = nil
	}
	if e.graph != nil {
		e.graph.Close()
		e.graph = nil
	}
	e.id = uuid.Nil
	e.total = 0
	e.state = final
	return err
}

func (e *Engine) finishDrain(d *drain) {
	e.mu.Lock()
	_, ok := e.draining[d]
	delete(e.draining, d)
	e.mu.Unlock()
	if !ok {
		return
	}
	d.out.Pause()
	err := d.out.Close()
	d.graph.Close()
	if err != nil {
		e.log.Warn("closing stopped output", "err", err)
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// PlaybackID identifies the current playback in logs. It is uuid.Nil when
// nothing is playing.
func (e *Engine) PlaybackID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

func (e *Engine) Clock() *Clock { return e.clock }

func (e *Engine) Resources() Resources {
	e.mu.Lock()
	defer e.mu.Unlock()
	var r Resources
	if e.out != nil {
		r.Outputs = 1
	}
	if e.graph != nil {
		r.Voices = e.graph.Voices()
	}
	if e.timer != nil {
		r.Timers = 1
	}
	r.Outputs += len(e.draining)
	r.Timers += len(e.draining)
	return r
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (e *Engine) SetMasterVolume(volume float64) {
	volume = max(volume, 0)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
	if e.graph != nil {
		e.graph.SetMasterGain(intseq.DefaultOptions().MasterGain * volume)
	}
}

func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}
