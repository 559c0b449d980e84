package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// MicConfig describes the capture stream opened on the default input device.
type MicConfig struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// MicDevice captures from the platform microphone through PortAudio. One
// live source at a time; Acquire while a source is open fails with
// ErrDeviceUnavailable.
type MicDevice struct {
	cfg MicConfig

	mu   sync.Mutex
	held bool
}

// NewMicDevice returns a microphone device with the given stream parameters.
func NewMicDevice(cfg MicConfig) *MicDevice {
	return &MicDevice{cfg: cfg}
}

// Acquire initializes PortAudio, opens the default input stream and starts
// delivering frames. Every failure path tears down whatever was opened.
func (d *MicDevice) Acquire(ctx context.Context) (Source, error) {
	d.mu.Lock()
	if d.held {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: microphone already in use", ErrDeviceUnavailable)
	}
	d.held = true
	d.mu.Unlock()

	release := func() {
		d.mu.Lock()
		d.held = false
		d.mu.Unlock()
	}

	if err := portaudio.Initialize(); err != nil {
		release()
		return nil, fmt.Errorf("%w: initialize portaudio: %v", ErrDeviceUnavailable, err)
	}

	src := &micSource{
		frames:  make(chan []int16, 64),
		release: release,
	}

	stream, err := portaudio.OpenDefaultStream(d.cfg.Channels, 0, float64(d.cfg.SampleRate), d.cfg.FramesPerBuffer, src.onFrame)
	if err != nil {
		portaudio.Terminate()
		release()
		return nil, fmt.Errorf("%w: open input stream: %v", ErrDeviceUnavailable, err)
	}
	src.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		release()
		return nil, fmt.Errorf("%w: start input stream: %v", ErrDeviceUnavailable, err)
	}

	if ctx.Err() != nil {
		src.Close()
		return nil, ctx.Err()
	}

	return src, nil
}

type micSource struct {
	stream  *portaudio.Stream
	frames  chan []int16
	release func()

	closeOnce sync.Once
	dropped   int
}

func (s *micSource) Frames() <-chan []int16 {
	return s.frames
}

// onFrame runs on the PortAudio callback thread; it must never block, so a
// full channel drops the frame instead of stalling the audio driver.
func (s *micSource) onFrame(in []int16) {
	frame := make([]int16, len(in))
	copy(frame, in)
	select {
	case s.frames <- frame:
	default:
		s.dropped++
	}
}

// Close stops the stream, terminates PortAudio and closes the frame channel.
// Idempotent; always returns nil after the first call.
func (s *micSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if stopErr := s.stream.Stop(); stopErr != nil {
			err = fmt.Errorf("stop input stream: %w", stopErr)
		}
		if closeErr := s.stream.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close input stream: %w", closeErr)
		}
		portaudio.Terminate()
		close(s.frames)
		s.release()
		if s.dropped > 0 {
			slog.Warn("microphone frames dropped during capture", "count", s.dropped)
		}
	})
	return err
}
