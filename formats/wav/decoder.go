// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/boop/audio"
)

const wavFormatPCM = 1

// pcmReader is the part of wav.Decoder the source needs, split out for
// tests.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source streams integer PCM from a go-audio decoder as float samples.
type source struct {
	dec        pcmReader
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

	// PCMBuffer may return less than asked for before the end of the data
	// chunk, so keep reading until dst is full or nothing comes back.
	total := 0
	for total < len(dst) {
		s.intBuf.Data = s.intBuf.Data[:len(dst)-total]
		n, err := s.dec.PCMBuffer(s.intBuf)
		s.convert(dst[total:], s.intBuf.Data[:n])
		total += n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("reading wav data: %w", err)
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

func (s *source) convert(dst []audio.Sample, data []int) {
	if s.bitDepth == 8 {
		// 8-bit WAV is unsigned.
		for i, v := range data {
			dst[i] = audio.Sample(v-128) / 128
		}
		return
	}

	scale := audio.Sample(int64(1) << (s.bitDepth - 1))
	for i, v := range data {
		dst[i] = audio.Sample(v) / scale
	}
}

// Decoder decodes integer PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	// The go-audio header reader does not check the form type.
	var riff [12]byte
	if _, err := io.ReadFull(rs, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if string(riff[:4]) != "RIFF" || string(riff[8:]) != "WAVE" {
		return nil, ErrNotWavFile
	}
	if _, err := rs.Seek(-int64(len(riff)), io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("rewinding wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedEncoding, dec.BitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}
