// SPDX-License-Identifier: EPL-2.0

package session

import (
	"time"

	"github.com/decred/slog"
)

// config is the resolved set of session options handed to a backend.
type config struct {
	format         Format
	bufferDuration time.Duration
	log            slog.Logger
}

// enumerator is the backend-global state of a session. Every method runs
// on the session's device thread.
type enumerator interface {
	// query re-reads the default endpoints and the full device list.
	query() (deviceState, error)

	// activate opens dev for rendering. The returned Format is the one
	// the backend actually negotiated.
	activate(dev Device) (renderClient, Format, error)
}

// renderClient is one activated output endpoint: a shared buffer the
// render loop fills plus the transport that plays it out.
type renderClient interface {
	// BufferFrames is the capacity of the shared buffer in frames.
	BufferFrames() int

	// Padding is the number of frames queued and not yet played.
	Padding() (int, error)

	// GetBuffer returns a writable region of frames frames. It must not
	// exceed BufferFrames minus Padding.
	GetBuffer(frames int) ([]byte, error)
	ReleaseBuffer(frames int) error

	Start() error
	Stop() error
	Reset() error

	// Wait blocks until the backend consumed data.
	Wait() error

	Close() error
}
