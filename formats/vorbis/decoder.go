// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/boop/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frame      []float32
	pending    []float32
	done       bool
	err        error
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

// Err returns the decode error that ended the stream early, if any.
func (s *source) Err() error { return s.err }

func (s *source) WriteSamples(dst []audio.Sample) int {
	total := copy(dst, s.pending)
	s.pending = s.pending[total:]
	if s.done || total == len(dst) {
		return total
	}

	whole := total + (len(dst)-total)/s.channels*s.channels
	total = s.read(dst[:whole], total)

	if total == whole && total < len(dst) && !s.done {
		// Split the next frame across this call and the next one.
		if s.frame == nil {
			s.frame = make([]float32, s.channels)
		}
		if s.read(s.frame, 0) == s.channels {
			c := copy(dst[total:], s.frame)
			total += c
			s.pending = s.frame[c:]
		}
	}

	if total < len(dst) {
		s.done = true
	}
	return total
}

// read decodes into dst[off:], which must hold whole frames. oggvorbis may
// stop at a packet boundary, so it loops until dst is full or the stream
// ends.
func (s *source) read(dst []float32, off int) int {
	for off < len(dst) {
		n, err := s.dec.Read(dst[off:])
		off += n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("decoding vorbis: %w", err)
			}
			s.done = true
			break
		}
		if n == 0 {
			s.done = true
			break
		}
	}
	return off
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
