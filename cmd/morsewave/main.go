package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cbegin/morsewave-go"
	"github.com/cbegin/morsewave-go/internal/morse"
	"github.com/cbegin/morsewave-go/internal/theme"
	"github.com/cbegin/morsewave-go/internal/timeline"
	"github.com/cbegin/morsewave-go/internal/ui"
)

const defaultText = "SOS 안녕"

type options struct {
	text       string
	file       string
	preset     string
	auto       bool
	waveform   string
	instrument string
	scale      string
	tempo      float64
	baseFreq   float64
	sampleRate int
	noTUI      bool
	print      bool
	debug      bool
	logFile    string
}

func main() {
	var o options
	flag.StringVar(&o.text, "text", "", "text to play")
	flag.StringVar(&o.file, "file", "", "path to a text file to play")
	flag.StringVar(&o.preset, "preset", "", "theme preset: "+strings.Join(theme.Presets(), "|"))
	flag.BoolVar(&o.auto, "auto", false, "derive the theme from the text")
	flag.StringVar(&o.waveform, "waveform", "", "oscillator: sine|square|sawtooth|triangle")
	flag.StringVar(&o.instrument, "instrument", "", "instrument: piano|marimba|violin|synth")
	flag.StringVar(&o.scale, "scale", "", "scale: "+strings.Join(theme.ScaleNames(), "|"))
	flag.Float64Var(&o.tempo, "tempo", theme.DefaultTempoMultiplier, "tempo multiplier (0.5..2)")
	flag.Float64Var(&o.baseFreq, "base-freq", theme.DefaultBaseFrequency, "melody base frequency in Hz")
	flag.IntVar(&o.sampleRate, "sample-rate", morsewave.DefaultSampleRate, "output sample rate")
	flag.BoolVar(&o.noTUI, "no-tui", false, "play without the terminal UI")
	flag.BoolVar(&o.print, "print", false, "print the morse and event listing, then exit without audio")
	flag.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flag.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	closeLog, err := setupLogging(o)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(o, set); err != nil {
		slog.Error("morsewave failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

// setupLogging routes slog to stderr, or to a file while the TUI owns the
// terminal.
func setupLogging(o options) (func(), error) {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	useTUI := !o.noTUI && !o.print

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case useTUI:
		w = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

func run(o options, set map[string]bool) error {
	text, err := resolveText(o.file, o.text, flag.Args())
	if err != nil {
		return err
	}
	th, err := buildTheme(o, set, text)
	if err != nil {
		return err
	}
	slog.Debug("theme", "mood", th.Mood, "instrument", th.Instrument, "waveform", th.Waveform,
		"base_freq", th.BaseFrequency, "tempo", th.TempoMultiplier, "scale", th.Scale)

	if o.print {
		printTimeline(os.Stdout, text, th)
		return nil
	}

	eng, err := morsewave.NewEngine(o.sampleRate, morsewave.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	events := eng.GenerateTimeline(text, th)
	if len(timeline.Notes(events)) == 0 {
		return errors.New("nothing to play: text has no encodable characters")
	}
	if o.noTUI {
		return runHeadless(eng, th)
	}
	return runTUI(eng, th, text, events)
}

func resolveText(path, inline string, args []string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return defaultText, nil
}

// buildTheme starts from a preset, the text, or the default, then applies
// only the flags given on the command line.
func buildTheme(o options, set map[string]bool, text string) (theme.Theme, error) {
	th := theme.Default()
	switch {
	case o.preset != "":
		p, err := theme.Preset(o.preset)
		if err != nil {
			return th, fmt.Errorf("invalid -preset: %w", err)
		}
		th = p
	case o.auto:
		th = theme.Derive(text)
	}
	if set["waveform"] {
		w, err := theme.ParseWaveform(o.waveform)
		if err != nil {
			return th, fmt.Errorf("invalid -waveform: %w", err)
		}
		th.Waveform = w
	}
	if set["instrument"] {
		inst, err := theme.ParseInstrument(o.instrument)
		if err != nil {
			return th, fmt.Errorf("invalid -instrument: %w", err)
		}
		th.Instrument = inst
	}
	if set["scale"] {
		sc, err := theme.ScaleByName(o.scale)
		if err != nil {
			return th, fmt.Errorf("invalid -scale: %w", err)
		}
		th.Scale = sc
	}
	if set["tempo"] {
		th.TempoMultiplier = o.tempo
	}
	if set["base-freq"] {
		th.BaseFrequency = o.baseFreq
	}
	return th.Normalize(), nil
}

func printTimeline(w io.Writer, text string, th theme.Theme) {
	fmt.Fprintln(w, morse.Encode(text).Morse)
	events := timeline.Generate(text, th)
	for _, ev := range events {
		src := " "
		if ev.Source != 0 {
			src = string(ev.Source)
		}
		freq := ""
		if ev.IsNote() {
			freq = fmt.Sprintf("%7.2f Hz", ev.Frequency)
		}
		fmt.Fprintf(w, "%8.3f %6.3f  %-13s %s %s\n", ev.Start, ev.Duration, ev.Symbol, src, freq)
	}
	fmt.Fprintf(w, "total %.3fs, %d notes\n", timeline.Total(events), len(timeline.Notes(events)))
}

func runHeadless(eng *morsewave.Engine, th theme.Theme) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	done := make(chan struct{})
	if err := eng.Play(th, func() { close(done) }); err != nil {
		return err
	}
	select {
	case <-done:
		fmt.Println("playback completed")
	case <-ctx.Done():
		slog.Info("received interrupt, stopping")
		return eng.Stop()
	}
	return nil
}

func runTUI(eng *morsewave.Engine, th theme.Theme, text string, events []timeline.Event) error {
	p := ui.NewProgram(ui.Config{
		Text:      text,
		Morse:     morse.Encode(text).Morse,
		Events:    events,
		Theme:     th,
		Clock:     eng.Clock(),
		Stop:      eng.Stop,
		Volume:    eng.MasterVolume,
		SetVolume: eng.SetMasterVolume,
	})
	if err := eng.Play(th, func() { p.Send(ui.DoneMsg{}) }); err != nil {
		return err
	}
	_, err := p.Run()
	if stopErr := eng.Stop(); err == nil {
		err = stopErr
	}
	return err
}
