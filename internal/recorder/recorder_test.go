package recorder_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
	"github.com/mishrasarthak227/ai-interview-agent/internal/recorder"
)

// fakeDevice hands out channel-backed sources and tracks whether the device
// is currently held, so tests can assert it is released on every exit path.
type fakeDevice struct {
	mu     sync.Mutex
	held   bool
	denied bool
	src    *fakeSource
}

func (d *fakeDevice) Acquire(ctx context.Context) (capture.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.denied {
		return nil, fmt.Errorf("%w: permission denied", capture.ErrDeviceUnavailable)
	}
	if d.held {
		return nil, fmt.Errorf("%w: already held", capture.ErrDeviceUnavailable)
	}
	d.held = true
	d.src = &fakeSource{
		frames: make(chan []int16, 16),
		release: func() {
			d.mu.Lock()
			d.held = false
			d.mu.Unlock()
		},
	}
	return d.src, nil
}

func (d *fakeDevice) isHeld() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

type fakeSource struct {
	frames  chan []int16
	release func()
	once    sync.Once
}

func (s *fakeSource) Frames() <-chan []int16 { return s.frames }

func (s *fakeSource) Close() error {
	s.once.Do(func() {
		close(s.frames)
		s.release()
	})
	return nil
}

type fakeUploader struct {
	mu     sync.Mutex
	calls  int
	err    error
	result interview.UploadResult
}

func (u *fakeUploader) Upload(ctx context.Context, artifact interview.RecordingArtifact) (interview.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return interview.UploadResult{}, u.err
	}
	return u.result, nil
}

func newRecorder(device *fakeDevice, uploader *fakeUploader) *recorder.Recorder {
	return recorder.New(device, uploader, recorder.Config{SampleRate: 16000, Channels: 1}, nil)
}

func TestRecordSubmitRoundTrip(t *testing.T) {
	device := &fakeDevice{}
	uploader := &fakeUploader{result: interview.UploadResult{
		Transcript: "hello",
		Metrics:    interview.Metrics{Pace: 80, Confidence: 70, Tone: 75},
	}}
	rec := newRecorder(device, uploader)
	ctx := context.Background()

	if err := rec.Start(ctx); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if rec.State() != recorder.StateRecording {
		t.Fatalf("expected recording state, got %s", rec.State())
	}

	device.src.frames <- []int16{1, 2, 3, 4}
	device.src.frames <- []int16{5, 6}

	artifact, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop err: %v", err)
	}
	if rec.State() != recorder.StateStopped {
		t.Fatalf("expected stopped state, got %s", rec.State())
	}
	if device.isHeld() {
		t.Fatal("device must be released after stop")
	}
	if artifact.ID == "" || len(artifact.Data) == 0 {
		t.Fatalf("expected a finished artifact, got %+v", artifact)
	}

	result, err := rec.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if result.Transcript != "hello" {
		t.Fatalf("unexpected transcript: %q", result.Transcript)
	}
	if rec.State() != recorder.StateIdle {
		t.Fatalf("expected idle after submit, got %s", rec.State())
	}
	if _, ok := rec.Artifact(); ok {
		t.Fatal("artifact must clear after a successful submit")
	}
}

func TestStartRejectedOutsideIdle(t *testing.T) {
	device := &fakeDevice{}
	rec := newRecorder(device, &fakeUploader{})
	ctx := context.Background()

	if err := rec.Start(ctx); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if err := rec.Start(ctx); !errors.Is(err, recorder.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestDeviceDenialReturnsToIdle(t *testing.T) {
	device := &fakeDevice{denied: true}
	rec := newRecorder(device, &fakeUploader{})

	err := rec.Start(context.Background())
	if !errors.Is(err, capture.ErrDeviceUnavailable) {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", err)
	}
	if rec.State() != recorder.StateIdle {
		t.Fatalf("denial must return to idle, got %s", rec.State())
	}
	if _, ok := rec.Artifact(); ok {
		t.Fatal("denial must not produce an artifact")
	}

	// The machine recovers once the device becomes available.
	device.mu.Lock()
	device.denied = false
	device.mu.Unlock()
	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start after recovery err: %v", err)
	}
}

func TestStopRejectedOutsideRecording(t *testing.T) {
	rec := newRecorder(&fakeDevice{}, &fakeUploader{})
	if _, err := rec.Stop(); !errors.Is(err, recorder.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestResetSemantics(t *testing.T) {
	device := &fakeDevice{}
	rec := newRecorder(device, &fakeUploader{})
	ctx := context.Background()

	// Reset from idle is a harmless no-op.
	if err := rec.Reset(); err != nil {
		t.Fatalf("Reset from idle err: %v", err)
	}

	if err := rec.Start(ctx); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	// Reset mid-recording is illegal; stop first.
	if err := rec.Reset(); !errors.Is(err, recorder.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	if _, err := rec.Stop(); err != nil {
		t.Fatalf("Stop err: %v", err)
	}
	if err := rec.Reset(); err != nil {
		t.Fatalf("Reset from stopped err: %v", err)
	}
	if rec.State() != recorder.StateIdle {
		t.Fatalf("expected idle after reset, got %s", rec.State())
	}
	if _, ok := rec.Artifact(); ok {
		t.Fatal("reset must discard the artifact")
	}
}

func TestFailedSubmitRetainsArtifactForRetry(t *testing.T) {
	device := &fakeDevice{}
	uploader := &fakeUploader{err: errors.New("network down")}
	rec := newRecorder(device, uploader)
	ctx := context.Background()

	if err := rec.Start(ctx); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	device.src.frames <- []int16{1, 2}
	stopped, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop err: %v", err)
	}

	if _, err := rec.Submit(ctx); !errors.Is(err, recorder.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if rec.State() != recorder.StateStopped {
		t.Fatalf("failed submit must return to stopped, got %s", rec.State())
	}
	retained, ok := rec.Artifact()
	if !ok {
		t.Fatal("artifact must be retained after a failed submit")
	}
	if retained.ID != stopped.ID {
		t.Fatalf("retained a different artifact: %s vs %s", retained.ID, stopped.ID)
	}

	// Retry without re-recording.
	uploader.mu.Lock()
	uploader.err = nil
	uploader.result = interview.UploadResult{Transcript: "retried"}
	uploader.mu.Unlock()

	result, err := rec.Submit(ctx)
	if err != nil {
		t.Fatalf("retry Submit err: %v", err)
	}
	if result.Transcript != "retried" {
		t.Fatalf("unexpected transcript: %q", result.Transcript)
	}
	if uploader.calls != 2 {
		t.Fatalf("expected 2 upload attempts, got %d", uploader.calls)
	}
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	device := &fakeDevice{}
	rec := recorder.New(device, &fakeUploader{}, recorder.Config{}, nil)
	ctx := context.Background()

	if err := rec.Start(ctx); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	device.src.frames <- make([]int16, recorder.DefaultSampleRate)

	artifact, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop with default config err: %v", err)
	}
	// One second of mono audio at the default rate.
	if artifact.Duration != time.Second {
		t.Fatalf("unexpected duration under default config: %v", artifact.Duration)
	}
}

func TestSubmitRejectedWithoutArtifact(t *testing.T) {
	rec := newRecorder(&fakeDevice{}, &fakeUploader{})
	if _, err := rec.Submit(context.Background()); !errors.Is(err, recorder.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
