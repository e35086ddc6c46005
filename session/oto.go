// SPDX-License-Identifier: EPL-2.0

//go:build cgo && !noaudio

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

func init() {
	registerBackend(Oto, newOtoEnumerator)
}

// oto allows a single context per process.
var (
	otoMtx    sync.Mutex
	otoCtx    *oto.Context
	otoFormat Format
)

// sharedOtoContext returns the process-wide context, creating it with f on
// first use. Later callers get the existing context and its format.
func sharedOtoContext(f Format, buffer time.Duration) (*oto.Context, Format, error) {
	otoMtx.Lock()
	defer otoMtx.Unlock()

	if otoCtx != nil {
		return otoCtx, otoFormat, nil
	}

	var sf oto.Format
	switch f.SampleFormat {
	case FormatI16:
		sf = oto.FormatSignedInt16LE
	case FormatF32:
		sf = oto.FormatFloat32LE
	default:
		return nil, Format{}, fmt.Errorf("%w: oto cannot play %s", ErrDeviceNotUsable, f.SampleFormat)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       sf,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: oto context: %w", ErrNoDeviceAvailable, err)
	}
	<-ready

	otoCtx, otoFormat = ctx, f
	return ctx, f, nil
}

// otoEnumerator exposes the oto context as a single default output. oto
// has no device selection and no capture.
type otoEnumerator struct {
	cfg config
}

func newOtoEnumerator(cfg config) (enumerator, error) {
	return &otoEnumerator{cfg: cfg}, nil
}

func (e *otoEnumerator) query() (deviceState, error) {
	ctx, f, err := sharedOtoContext(e.cfg.format, e.cfg.bufferDuration)
	if err != nil {
		return deviceState{}, err
	}
	if err := ctx.Err(); err != nil {
		return deviceState{}, fmt.Errorf("%w: %w", ErrDeviceNotAvailable, err)
	}

	out, err := newDevice(Oto, "oto-default", "Default output", Output, true, f, ctx)
	if err != nil {
		return deviceState{}, err
	}
	return deviceState{
		defaultOutput: &out,
		all:           []Device{out},
	}, nil
}

func (e *otoEnumerator) activate(dev Device) (renderClient, Format, error) {
	ctx, ok := dev.handle.(*oto.Context)
	if !ok {
		return nil, Format{}, fmt.Errorf("%w: not an oto device", ErrDeviceNotUsable)
	}

	// The player keeps its own buffer of half the requested length. The
	// ring is grown by the same amount so Padding, which includes the
	// player's buffer, always leaves room to write.
	f := dev.Format
	frames := bufferFrames(f, e.cfg)
	ahead := max(1, frames/2)
	c := newRingClient(f, frames+ahead)
	player := ctx.NewPlayer(&otoReader{ctx: ctx, c: c})
	player.SetBufferSize(ahead * c.frameBytes)
	c.tr = &otoTransport{player: player}
	return c, f, nil
}

// otoReader feeds the player from the ring. It never reports EOF; an
// underrun plays silence.
type otoReader struct {
	ctx *oto.Context
	c   *ringClient
}

func (r *otoReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		r.c.invalidate()
	}
	r.c.pull(p)
	return len(p), nil
}

type otoTransport struct {
	player *oto.Player
}

func (t *otoTransport) Start() error {
	t.player.Play()
	return t.err()
}

func (t *otoTransport) Stop() error {
	t.player.Pause()
	return t.err()
}

func (t *otoTransport) Close() error {
	if err := t.player.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknown, err)
	}
	return nil
}

// Buffered reports what the player read ahead of the device.
func (t *otoTransport) Buffered() int { return t.player.BufferedSize() }

func (t *otoTransport) err() error {
	if err := t.player.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceNotAvailable, err)
	}
	return nil
}
