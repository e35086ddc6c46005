// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/utils"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// source converts the 16-bit little-endian stereo stream of go-mp3 to
// float samples.
type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	done       bool
	err        error
}

func (s *source) SampleRate() int { return s.sampleRate }

// go-mp3 always produces stereo.
func (s *source) Channels() int { return audio.Stereo }

// Err returns the decode error that ended the stream early, if any.
func (s *source) Err() error { return s.err }

func (s *source) WriteSamples(dst []audio.Sample) int {
	if s.done || len(dst) == 0 {
		return 0
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	// The decoder returns at most one frame per Read.
	n, err := io.ReadFull(s.dec, s.buf)
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			s.err = fmt.Errorf("decoding mp3: %w", err)
		}
	}

	samples := n / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}
	return samples
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
