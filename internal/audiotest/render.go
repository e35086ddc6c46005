// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
)

var errOverflow = errors.New("simulated buffer overflow")

// RenderClient simulates a backend buffer drained at a fixed period. Each
// Wait plays Period frames from the front of the queue while the
// transport is started. It is meant to be driven by a single goroutine.
type RenderClient struct {
	Frames     int // buffer capacity in frames
	FrameBytes int
	Period     int // frames played per Wait

	// FailAfter makes the FailAfter-th Wait, and every one after it,
	// return FailErr. Zero disables it.
	FailAfter int
	FailErr   error

	queued  []byte
	scratch []byte
	started bool

	// Played holds every byte played so far, PlayedAtStop the length of
	// Played when Stop was last called.
	Played       []byte
	PlayedAtStop int

	Starts, Stops, Resets, Waits, Closes int
}

func (c *RenderClient) BufferFrames() int { return c.Frames }

func (c *RenderClient) Padding() (int, error) {
	return len(c.queued) / c.FrameBytes, nil
}

func (c *RenderClient) GetBuffer(frames int) ([]byte, error) {
	if free := c.Frames - len(c.queued)/c.FrameBytes; frames > free {
		return nil, fmt.Errorf("%w: %d frames asked, %d free", errOverflow, frames, free)
	}
	c.scratch = make([]byte, frames*c.FrameBytes)
	return c.scratch, nil
}

func (c *RenderClient) ReleaseBuffer(frames int) error {
	c.queued = append(c.queued, c.scratch[:frames*c.FrameBytes]...)
	return nil
}

func (c *RenderClient) Start() error {
	c.Starts++
	c.started = true
	return nil
}

func (c *RenderClient) Stop() error {
	c.Stops++
	c.started = false
	c.PlayedAtStop = len(c.Played)
	return nil
}

func (c *RenderClient) Reset() error {
	c.Resets++
	c.queued = nil
	return nil
}

func (c *RenderClient) Wait() error {
	c.Waits++
	if c.FailAfter > 0 && c.Waits >= c.FailAfter {
		return c.FailErr
	}
	if c.started {
		n := min(c.Period*c.FrameBytes, len(c.queued))
		c.Played = append(c.Played, c.queued[:n]...)
		c.queued = c.queued[n:]
	}
	return nil
}

func (c *RenderClient) Close() error {
	c.Closes++
	return nil
}
