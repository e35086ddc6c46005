// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

func init() {
	registerBackend(NoOp, newNoopEnumerator)
}

var (
	noopOutputFormat = Format{Channels: 2, SampleRate: 48000, SampleFormat: FormatF32}
	noopInputFormat  = Format{Channels: 1, SampleRate: 48000, SampleFormat: FormatF32}
)

// noopEnumerator exposes one default output and one default input that
// never change.
type noopEnumerator struct {
	cfg config
}

func newNoopEnumerator(cfg config) (enumerator, error) {
	return &noopEnumerator{cfg: cfg}, nil
}

func (e *noopEnumerator) query() (deviceState, error) {
	out, err := newDevice(NoOp, "noop-out", "No-op output", Output, true, noopOutputFormat, nil)
	if err != nil {
		return deviceState{}, err
	}
	in, err := newDevice(NoOp, "noop-in", "No-op input", Input, true, noopInputFormat, nil)
	if err != nil {
		return deviceState{}, err
	}
	return deviceState{
		defaultOutput: &out,
		defaultInput:  &in,
		all:           []Device{out, in},
	}, nil
}

func (e *noopEnumerator) activate(dev Device) (renderClient, Format, error) {
	if dev.Type != Output {
		return nil, Format{}, fmt.Errorf("%w: %s", ErrDeviceNotUsable, dev.Name)
	}
	frames := bufferFrames(dev.Format, e.cfg)
	return &noopClient{
		frames:     frames,
		frameBytes: dev.Format.FrameBytes(),
		scratch:    make([]byte, frames*dev.Format.FrameBytes()),
	}, dev.Format, nil
}

// noopClient consumes everything instantly: the buffer is always empty
// and Wait never blocks.
type noopClient struct {
	frames     int
	frameBytes int
	scratch    []byte
}

func (c *noopClient) BufferFrames() int       { return c.frames }
func (c *noopClient) Padding() (int, error)   { return 0, nil }
func (c *noopClient) ReleaseBuffer(int) error { return nil }
func (c *noopClient) Start() error            { return nil }
func (c *noopClient) Stop() error             { return nil }
func (c *noopClient) Reset() error            { return nil }
func (c *noopClient) Wait() error             { return nil }
func (c *noopClient) Close() error            { return nil }

func (c *noopClient) GetBuffer(frames int) ([]byte, error) {
	return c.scratch[:frames*c.frameBytes], nil
}
