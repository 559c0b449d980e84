package capture

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	wav "github.com/youpy/go-wav"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

const bitsPerSample = 16

// Encoder accumulates PCM frames from a live source and finalizes them into
// a single self-contained WAV clip. It is not safe for concurrent use; the
// recorder feeds it from one goroutine only.
type Encoder struct {
	sampleRate int
	channels   int
	samples    []int16
}

// NewEncoder returns an encoder for the given stream parameters.
func NewEncoder(sampleRate, channels int) *Encoder {
	return &Encoder{
		sampleRate: sampleRate,
		channels:   channels,
		samples:    make([]int16, 0, sampleRate),
	}
}

// Append buffers one captured frame.
func (e *Encoder) Append(frame []int16) {
	e.samples = append(e.samples, frame...)
}

// Duration reports the length of the buffered audio.
func (e *Encoder) Duration() time.Duration {
	if e.sampleRate == 0 || e.channels == 0 {
		return 0
	}
	frames := len(e.samples) / e.channels
	return time.Duration(frames) * time.Second / time.Duration(e.sampleRate)
}

// Finalize encodes everything buffered so far into one artifact. A silent or
// empty capture still yields a valid (zero-length) clip; deciding what an
// empty answer means is left to the caller.
func (e *Encoder) Finalize(now time.Time) (interview.RecordingArtifact, error) {
	frames := len(e.samples) / e.channels
	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(frames), uint16(e.channels), uint32(e.sampleRate), bitsPerSample)

	samples := make([]wav.Sample, frames)
	for i := 0; i < frames; i++ {
		for c := 0; c < e.channels && c < 2; c++ {
			samples[i].Values[c] = int(e.samples[i*e.channels+c])
		}
	}
	if err := w.WriteSamples(samples); err != nil {
		return interview.RecordingArtifact{}, fmt.Errorf("encode wav: %w", err)
	}

	return interview.RecordingArtifact{
		ID:         uuid.NewString()[:8],
		Data:       buf.Bytes(),
		MIMEType:   "audio/wav",
		Duration:   e.Duration(),
		CapturedAt: now,
	}, nil
}
