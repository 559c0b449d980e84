// Package recorder implements the recording state machine that governs when
// audio capture may start, stop and upload, and which owns the single
// finished clip between those moments.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

// State of the recording machine. Transitions:
// Idle -> RequestingDevice -> Recording -> Stopped -> Uploading -> Idle on
// the success path; Stopped -> Idle on reset; RequestingDevice -> Idle on
// device denial; Uploading -> Stopped on upload failure.
type State int

const (
	StateIdle State = iota
	StateRequestingDevice
	StateRecording
	StateStopped
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestingDevice:
		return "requesting-device"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	case StateUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidState reports a call made outside its legal state. Callers
	// gate UI affordances, but the machine still validates every call.
	ErrInvalidState = errors.New("recorder: invalid state for operation")
	// ErrUploadFailed wraps any upload error; the artifact is retained so
	// Submit may be retried without re-recording.
	ErrUploadFailed = errors.New("recorder: upload failed")
)

// Uploader transmits one finished clip to the scoring service.
type Uploader interface {
	Upload(ctx context.Context, artifact interview.RecordingArtifact) (interview.UploadResult, error)
}

// Config carries the stream parameters used when encoding a capture.
type Config struct {
	SampleRate int
	Channels   int
}

const (
	// DefaultSampleRate is used when Config leaves the rate unset.
	DefaultSampleRate = 44100
	// DefaultChannels is used when Config leaves the channel count unset.
	DefaultChannels = 1
)

// Recorder is safe for concurrent use; each operation validates the current
// state under one lock, so the legal-transition set is enforced no matter
// how callers interleave.
type Recorder struct {
	device   capture.Device
	uploader Uploader
	cfg      Config
	logger   *slog.Logger
	clock    func() time.Time

	mu       sync.Mutex
	state    State
	source   capture.Source
	encoder  *capture.Encoder
	pumpDone chan struct{}
	artifact *interview.RecordingArtifact
}

// New returns an idle recorder bound to a capture device and an uploader.
func New(device capture.Device, uploader Uploader, cfg Config, logger *slog.Logger) *Recorder {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = DefaultChannels
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		device:   device,
		uploader: uploader,
		cfg:      cfg,
		logger:   logger,
		clock:    time.Now,
	}
}

// State returns the current machine state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Artifact returns the retained clip, if any.
func (r *Recorder) Artifact() (interview.RecordingArtifact, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.artifact == nil {
		return interview.RecordingArtifact{}, false
	}
	return *r.artifact, true
}

// Start acquires the capture device and begins continuous encoding. Legal
// only from Idle. On denial the machine returns to Idle with no artifact and
// the error wraps capture.ErrDeviceUnavailable.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.state != StateIdle {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidState, state)
	}
	r.state = StateRequestingDevice
	r.mu.Unlock()

	source, err := r.device.Acquire(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateIdle
		r.logger.Warn("device acquisition failed", "error", err)
		return err
	}

	r.source = source
	r.encoder = capture.NewEncoder(r.cfg.SampleRate, r.cfg.Channels)
	r.pumpDone = make(chan struct{})
	r.state = StateRecording
	go r.pump(source, r.encoder, r.pumpDone)

	r.logger.Info("recording started", "sampleRate", r.cfg.SampleRate, "channels", r.cfg.Channels)
	return nil
}

// pump drains the source into the encoder until the source closes. The
// encoder is only handed back to the machine after pumpDone is closed, so no
// lock is needed around Append.
func (r *Recorder) pump(source capture.Source, enc *capture.Encoder, done chan struct{}) {
	defer close(done)
	for frame := range source.Frames() {
		enc.Append(frame)
	}
}

// Stop finalizes the in-progress encoding into exactly one artifact and
// releases the device. Legal only from Recording.
func (r *Recorder) Stop() (interview.RecordingArtifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return interview.RecordingArtifact{}, fmt.Errorf("%w: stop from %s", ErrInvalidState, r.state)
	}

	// Closing the source ends the frame stream; wait for the pump to flush
	// the tail before encoding. The pump never takes the lock, so holding it
	// here also serializes racing Stop calls.
	if err := r.source.Close(); err != nil {
		r.logger.Warn("device release reported error", "error", err)
	}
	<-r.pumpDone

	artifact, err := r.encoder.Finalize(r.clock())
	r.source = nil
	r.encoder = nil
	r.pumpDone = nil
	if err != nil {
		r.state = StateIdle
		return interview.RecordingArtifact{}, err
	}

	r.artifact = &artifact
	r.state = StateStopped
	r.logger.Info("recording stopped", "artifact", artifact.ID, "duration", artifact.Duration, "bytes", len(artifact.Data))
	return artifact, nil
}

// Reset discards the retained artifact and returns to Idle. Legal from
// Stopped, and a no-op from Idle so callers may reset defensively.
func (r *Recorder) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case StateIdle:
		return nil
	case StateStopped:
		if r.artifact != nil {
			r.logger.Info("recording discarded", "artifact", r.artifact.ID)
		}
		r.artifact = nil
		r.state = StateIdle
		return nil
	default:
		return fmt.Errorf("%w: reset from %s", ErrInvalidState, r.state)
	}
}

// Submit uploads the retained artifact. Legal only from Stopped. On success
// the artifact is cleared and the machine returns to Idle; on failure the
// artifact is retained and the machine returns to Stopped so the caller may
// retry without re-recording.
func (r *Recorder) Submit(ctx context.Context) (interview.UploadResult, error) {
	r.mu.Lock()
	if r.state != StateStopped || r.artifact == nil {
		state := r.state
		r.mu.Unlock()
		return interview.UploadResult{}, fmt.Errorf("%w: submit from %s", ErrInvalidState, state)
	}
	artifact := *r.artifact
	r.state = StateUploading
	r.mu.Unlock()

	result, err := r.uploader.Upload(ctx, artifact)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateStopped
		r.logger.Warn("upload failed, artifact retained", "artifact", artifact.ID, "error", err)
		return interview.UploadResult{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	r.artifact = nil
	r.state = StateIdle
	r.logger.Info("upload complete", "artifact", artifact.ID, "transcriptLen", len(result.Transcript), "scored", result.Metrics.Scored())
	return result, nil
}
