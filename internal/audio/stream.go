// Package audio streams a sample source to the system output.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrUnavailable is returned when no audio device can be opened.
var ErrUnavailable = errors.New("audio output unavailable")

// bytesPerFrame is one stereo frame of float32 samples.
const bytesPerFrame = 8

type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal when playback has ended.
// When Finished returns true, the stream will return io.EOF on the next Read.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// Output is a running sink for a SampleSource.
type Output interface {
	// Play starts pulling from the source. It fails when the device
	// cannot start.
	Play() error
	Pause()
	// Position is how much audio the listener has heard.
	Position() time.Duration
	Close() error
}

// Factory opens an Output over a source.
type Factory func(sampleRate int, source SampleSource) (Output, error)

// StreamReader pulls interleaved stereo frames from a source and encodes
// them as float32 little endian. Partial frames are never returned.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	frames []float32
	read   int64
	closed bool
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.EOF
	}
	n := len(p) / bytesPerFrame
	if n == 0 {
		return 0, nil
	}
	if cap(r.frames) < 2*n {
		r.frames = make([]float32, 2*n)
	}
	r.frames = r.frames[:2*n]
	r.source.Process(r.frames)
	out := p[:0]
	for _, s := range r.frames {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(s))
	}
	r.read += int64(n)
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return len(out), io.EOF
	}
	return len(out), nil
}

// FramesRead is the number of frames handed to the reader's consumer.
func (r *StreamReader) FramesRead() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read
}

func (r *StreamReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// device is ebiten's audio context. ebiten allows one per process at a
// fixed rate and it can never be closed, so outputs share it.
var device struct {
	once sync.Once
	ctx  *ebitaudio.Context
	rate int
	err  error
}

func openDevice(sampleRate int) (*ebitaudio.Context, error) {
	device.once.Do(func() {
		defer func() {
			if rec := recover(); rec != nil {
				device.err = fmt.Errorf("%w: %v", ErrUnavailable, rec)
			}
		}()
		device.rate = sampleRate
		device.ctx = ebitaudio.NewContext(sampleRate)
	})
	switch {
	case device.err != nil:
		return nil, device.err
	case device.rate != sampleRate:
		return nil, fmt.Errorf("%w: device already running at %d Hz (requested %d Hz)", ErrUnavailable, device.rate, sampleRate)
	}
	return device.ctx, nil
}

// DeviceOutput plays a source on the system audio device.
type DeviceOutput struct {
	player *ebitaudio.Player
	stream *StreamReader
}

// OpenDevice is the Factory for the system audio device.
func OpenDevice(sampleRate int, source SampleSource) (Output, error) {
	ctx, err := openDevice(sampleRate)
	if err != nil {
		return nil, err
	}
	stream := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &DeviceOutput{player: pl, stream: stream}, nil
}

// Play starts the player. ebiten opens the device lazily inside Play and
// keeps any failure to itself, leaving the player stopped.
func (d *DeviceOutput) Play() error {
	d.player.Play()
	if !d.player.IsPlaying() {
		return fmt.Errorf("%w: device did not start", ErrUnavailable)
	}
	return nil
}

func (d *DeviceOutput) Pause() { d.player.Pause() }

// Position accounts for device latency, unlike FramesRead.
func (d *DeviceOutput) Position() time.Duration {
	return d.player.Position()
}

func (d *DeviceOutput) Close() error {
	d.player.Pause()
	err := d.player.Close()
	if cerr := d.stream.Close(); err == nil {
		err = cerr
	}
	return err
}
