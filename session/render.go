// SPDX-License-Identifier: EPL-2.0

package session

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/decred/slog"

	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/utils"
)

// render plays src on c until the source is exhausted and the buffer holds
// nothing but silence. Any failure stops and resets the transport before
// it is returned; nothing is retried.
func render(c renderClient, f Format, src audio.Source, log slog.Logger) (err error) {
	started := false
	defer func() {
		if err == nil {
			return
		}
		err = classify(err)
		log.Debugf("Render aborted: %v", err)
		if started {
			if serr := c.Stop(); serr != nil {
				log.Debugf("Stop after failure: %v", serr)
			}
		}
		if rerr := c.Reset(); rerr != nil {
			log.Debugf("Reset after failure: %v", rerr)
		}
	}()

	bufFrames := c.BufferFrames()
	if bufFrames <= 0 {
		return fmt.Errorf("%w: backend buffer of %d frames", ErrUnknown, bufFrames)
	}
	scratch := make([]audio.Sample, bufFrames*f.Channels)

	// fill pulls up to frames frames from src into the backend buffer. It
	// returns how many trailing frames were zero-filled and whether the
	// source ended.
	fill := func(frames int) (int, bool, error) {
		buf, err := c.GetBuffer(frames)
		if err != nil {
			return 0, false, err
		}
		samples := scratch[:frames*f.Channels]
		n := src.WriteSamples(samples)
		encodeSamples(buf, f.SampleFormat, samples[:n])
		if err := c.ReleaseBuffer(frames); err != nil {
			return 0, false, err
		}
		played := (n + f.Channels - 1) / f.Channels
		return frames - played, n < len(samples), nil
	}

	// waitFree blocks until the backend consumed something and returns
	// the number of writable frames.
	waitFree := func() (int, error) {
		if err := c.Wait(); err != nil {
			return 0, err
		}
		padding, err := c.Padding()
		if err != nil {
			return 0, err
		}
		return bufFrames - padding, nil
	}

	silent, done, err := fill(bufFrames)
	if err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return err
	}
	started = true
	log.Tracef("Primed %d frames, started", bufFrames)

	for !done {
		free, err := waitFree()
		if err != nil {
			return err
		}
		if free == 0 {
			continue
		}
		silent, done, err = fill(free)
		if err != nil {
			return err
		}
	}
	log.Tracef("Source exhausted, draining with %d silent frames queued", silent)

	// Everything the source produced has been played once the buffer
	// holds nothing but silence.
	for silent < bufFrames {
		free, err := waitFree()
		if err != nil {
			return err
		}
		if free == 0 {
			continue
		}
		buf, err := c.GetBuffer(free)
		if err != nil {
			return err
		}
		clear(buf)
		if err := c.ReleaseBuffer(free); err != nil {
			return err
		}
		silent += free
	}

	if err := c.Stop(); err != nil {
		return err
	}
	if err := c.Reset(); err != nil {
		return err
	}
	log.Tracef("Playback drained")
	return nil
}

// encodeSamples writes src into dst in the native encoding and zero-fills
// the rest of dst.
func encodeSamples(dst []byte, f SampleFormat, src []audio.Sample) {
	switch f {
	case FormatF32:
		for i, s := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(s))
		}
	case FormatI16:
		for i, s := range src {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(utils.Float32ToInt16(s)))
		}
	default:
		panic(fmt.Sprintf("session: encode to %s", f))
	}
	clear(dst[len(src)*f.Bytes():])
}
