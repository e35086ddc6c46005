// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/boop/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples []int
	offset  int
	err     error // returned once samples run out
	chunk   int   // max samples per PCMBuffer call, 0 for no limit
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.offset >= len(m.samples) {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := len(buf.Data)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	n = copy(buf.Data[:n], m.samples[m.offset:])
	m.offset += n

	if m.offset >= len(m.samples) && m.err == nil {
		return n, io.EOF
	}
	return n, nil
}

func newMockSource(bitDepth int, r *mockAiffReader) *source {
	return &source{dec: r, sampleRate: 44100, channels: 1, bitDepth: bitDepth}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", nil},
		{"riff", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestSource_WriteSamples(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, &mockAiffReader{samples: []int{0, 16384, -16384, 32767, -32768}})

	got := audio.ReadAll(src, 3)
	want := []audio.Sample{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if src.Err() != nil {
		t.Errorf("Err() = %v, want nil", src.Err())
	}
}

func TestSource_ShortReads(t *testing.T) {
	t.Parallel()

	// The decoder hands out two samples at a time; the source must still
	// fill whole buffers until the data ends.
	src := newMockSource(16, &mockAiffReader{samples: make([]int, 11), chunk: 2})

	buf := make([]audio.Sample, 4)
	for i, want := range []int{4, 4, 3, 0} {
		if n := src.WriteSamples(buf); n != want {
			t.Errorf("call %d: WriteSamples() = %d, want %d", i, n, want)
		}
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, &mockAiffReader{samples: make([]int, 6), err: io.ErrUnexpectedEOF})

	buf := make([]audio.Sample, 4)
	if n := src.WriteSamples(buf); n != 4 {
		t.Fatalf("WriteSamples() = %d, want 4", n)
	}
	if n := src.WriteSamples(buf); n != 2 {
		t.Fatalf("WriteSamples() = %d, want 2", n)
	}
	if !errors.Is(src.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("Err() = %v, want io.ErrUnexpectedEOF", src.Err())
	}
	if n := src.WriteSamples(buf); n != 0 {
		t.Errorf("WriteSamples() after end = %d, want 0", n)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	r := &mockAiffReader{samples: make([]int, 4)}
	src := newMockSource(16, r)
	if n := src.WriteSamples(nil); n != 0 {
		t.Errorf("WriteSamples(nil) = %d, want 0", n)
	}
	if r.offset != 0 {
		t.Errorf("decoder advanced to %d on an empty buffer", r.offset)
	}
}

func TestSource_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		input    int
		expected float32
	}{
		{8, 127, 127.0 / 128.0},
		{8, -128, -1.0},
		{16, 32767, 32767.0 / 32768.0},
		{16, -32768, -1.0},
		{24, 8388607, 8388607.0 / 8388608.0},
		{32, 2147483647, 2147483647.0 / 2147483648.0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-bit %d", tt.bitDepth, tt.input), func(t *testing.T) {
			t.Parallel()

			src := newMockSource(tt.bitDepth, &mockAiffReader{samples: []int{tt.input}})
			dst := make([]audio.Sample, 1)
			if n := src.WriteSamples(dst); n != 1 {
				t.Fatalf("WriteSamples() = %d, want 1", n)
			}

			tolerance := float32(0.001)
			if dst[0] < tt.expected-tolerance || dst[0] > tt.expected+tolerance {
				t.Errorf("dst[0] = %f, want ~%f", dst[0], tt.expected)
			}
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout}
	for i, err := range all {
		for j, other := range all {
			if i != j && errors.Is(err, other) {
				t.Errorf("%v matches %v", err, other)
			}
		}
	}
}

func BenchmarkSource_WriteSamples(b *testing.B) {
	r := &mockAiffReader{samples: make([]int, 1<<20)}
	src := newMockSource(16, r)
	buf := make([]audio.Sample, 4096)

	b.ReportAllocs()

	for b.Loop() {
		if src.WriteSamples(buf) < len(buf) {
			r.offset = 0
			src.done = false
		}
	}
}
