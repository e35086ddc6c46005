// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ik5/boop/internal/hostbuf"
)

// transport is the part of a callback driven backend that moves data out
// of the ring.
type transport interface {
	Start() error
	Stop() error
	Close() error

	// Buffered is the number of bytes already taken from the ring that
	// the device has not played yet.
	Buffered() int
}

// ringClient adapts a callback driven backend to renderClient. The render
// loop writes into a hostbuf.Ring; the backend's audio thread drains it
// through pull and signals the event after every read.
type ringClient struct {
	format     Format
	frames     int
	frameBytes int

	ring    *hostbuf.Ring
	event   *hostbuf.Event
	scratch []byte
	tr      transport

	// invalid is set by the backend when the device went away. stopping
	// masks stop notifications caused by our own Stop.
	invalid  atomic.Bool
	stopping atomic.Bool
}

func newRingClient(f Format, frames int) *ringClient {
	fb := f.FrameBytes()
	return &ringClient{
		format:     f,
		frames:     frames,
		frameBytes: fb,
		ring:       hostbuf.NewRing(frames * fb),
		event:      hostbuf.NewEvent(),
		scratch:    make([]byte, frames*fb),
	}
}

// bufferFrames converts a buffer length to frames, never below one
// frame.
func bufferFrames(f Format, cfg config) int {
	return max(1, int(int64(f.SampleRate)*int64(cfg.bufferDuration)/int64(time.Second)))
}

func (c *ringClient) BufferFrames() int { return c.frames }

// Padding counts the frames queued in the ring plus those the transport
// read ahead and still holds. It never exceeds BufferFrames. A transport
// that reads ahead needs a ring larger than its own buffer, or the render
// loop never gets room to write.
func (c *ringClient) Padding() (int, error) {
	if c.invalid.Load() {
		return 0, ErrDeviceNotAvailable
	}
	queued := c.ring.Len()
	if c.tr != nil {
		queued += c.tr.Buffered()
	}
	return min(queued/c.frameBytes, c.frames), nil
}

func (c *ringClient) GetBuffer(frames int) ([]byte, error) {
	if c.invalid.Load() {
		return nil, ErrDeviceNotAvailable
	}
	if free := c.ring.Free() / c.frameBytes; frames > free {
		return nil, fmt.Errorf("%w: asked for %d frames, %d free", ErrUnknown, frames, free)
	}
	return c.scratch[:frames*c.frameBytes], nil
}

func (c *ringClient) ReleaseBuffer(frames int) error {
	want := frames * c.frameBytes
	if n := c.ring.Write(c.scratch[:want]); n != want {
		return fmt.Errorf("%w: ring took %d of %d bytes", ErrUnknown, n, want)
	}
	return nil
}

func (c *ringClient) Start() error {
	return c.tr.Start()
}

func (c *ringClient) Stop() error {
	c.stopping.Store(true)
	defer c.stopping.Store(false)
	return c.tr.Stop()
}

func (c *ringClient) Reset() error {
	c.ring.Reset()
	return nil
}

func (c *ringClient) Wait() error {
	c.event.Wait()
	if c.invalid.Load() {
		return ErrDeviceNotAvailable
	}
	return nil
}

func (c *ringClient) Close() error {
	return c.tr.Close()
}

// pull fills out from the ring, zero-filling on underrun. It runs on the
// backend's audio thread. It returns the number of bytes taken from the
// ring.
func (c *ringClient) pull(out []byte) int {
	whole := len(out) - len(out)%c.frameBytes
	n := c.ring.Read(out[:whole])
	clear(out[n:])
	c.event.Signal()
	return n
}

// invalidate marks the device gone and wakes a waiting render loop.
func (c *ringClient) invalidate() {
	if c.stopping.Load() {
		return
	}
	c.invalid.Store(true)
	c.event.Signal()
}
