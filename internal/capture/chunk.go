package capture

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

// ErrNotCapturing reports a chunk pushed while no source is live.
var ErrNotCapturing = errors.New("no live capture source")

// ChunkDevice adapts audio that arrives in discrete binary chunks, such as
// websocket frames from a browser recorder, to the Device contract. The
// handler pushes little-endian 16-bit PCM; the live source relays it to the
// recorder.
type ChunkDevice struct {
	mu  sync.Mutex
	src *chunkSource
}

// NewChunkDevice returns an idle chunk-fed device.
func NewChunkDevice() *ChunkDevice {
	return &ChunkDevice{}
}

// Acquire opens a source fed by Push. Only one source may be live at a time.
func (d *ChunkDevice) Acquire(ctx context.Context) (Source, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.src != nil {
		return nil, fmt.Errorf("%w: capture already in progress", ErrDeviceUnavailable)
	}

	src := &chunkSource{
		frames: make(chan []int16, 64),
		detach: func(s *chunkSource) {
			d.mu.Lock()
			if d.src == s {
				d.src = nil
			}
			d.mu.Unlock()
		},
	}
	d.src = src
	return src, nil
}

// Push decodes one PCM chunk and forwards it to the live source. An odd
// trailing byte is ignored. Returns ErrNotCapturing when nothing is
// recording, which callers may treat as a stale frame rather than a fault.
func (d *ChunkDevice) Push(pcm []byte) error {
	d.mu.Lock()
	src := d.src
	d.mu.Unlock()
	if src == nil {
		return ErrNotCapturing
	}

	frame := make([]int16, len(pcm)/2)
	for i := range frame {
		frame[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return src.push(frame)
}

type chunkSource struct {
	detach func(*chunkSource)

	mu     sync.Mutex
	closed bool
	frames chan []int16
}

func (s *chunkSource) Frames() <-chan []int16 {
	return s.frames
}

func (s *chunkSource) push(frame []int16) error {
	if len(frame) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotCapturing
	}
	select {
	case s.frames <- frame:
	default:
		// Recorder fell behind; dropping keeps the pusher from stalling.
	}
	return nil
}

// Close detaches the source from its device and closes the frame channel.
// Idempotent.
func (s *chunkSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.frames)
	s.mu.Unlock()

	s.detach(s)
	return nil
}
