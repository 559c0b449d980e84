// Package capture wraps audio acquisition behind a small device contract so
// the recording state machine can run against a real microphone, a stream of
// websocket chunks, or a test fake without changes.
package capture

import (
	"context"
	"errors"
)

// ErrDeviceUnavailable reports that microphone access was denied or no
// usable input device exists. Recoverable by retrying acquisition.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

// Device grants access to an audio input.
type Device interface {
	// Acquire opens the underlying input and starts delivering PCM frames.
	// Fails with an error wrapping ErrDeviceUnavailable when access is
	// denied or the device is already held by a live source.
	Acquire(ctx context.Context) (Source, error)
}

// Source is a live audio input. Frames delivers 16-bit PCM chunks until the
// source is closed; Close stops capture, releases every underlying handle
// and is safe to call more than once.
type Source interface {
	Frames() <-chan []int16
	Close() error
}
