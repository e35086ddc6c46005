// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/boop/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	done       bool
	err        error
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

// Err returns the read error that ended the stream early, if any.
func (s *source) Err() error { return s.err }

func (s *source) WriteSamples(dst []audio.Sample) int {
	if s.done || len(dst) == 0 {
		return 0
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	}

	// AIFF samples are signed at every bit depth.
	scale := audio.Sample(int64(1) << (s.bitDepth - 1))

	total := 0
	for total < len(dst) {
		s.intBuf.Data = s.intBuf.Data[:len(dst)-total]
		n, err := s.dec.PCMBuffer(s.intBuf)
		for i, v := range s.intBuf.Data[:n] {
			dst[total+i] = audio.Sample(v) / scale
		}
		total += n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("reading aiff data: %w", err)
			}
			break
		}
		if n == 0 {
			break
		}
	}

	if total < len(dst) {
		s.done = true
	}
	return total
}

// Decoder decodes integer PCM AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
