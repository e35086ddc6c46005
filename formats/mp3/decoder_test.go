// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/boop/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16 // PCM samples (16-bit)
	offset     int
	frame      int   // max samples per Read, 0 for no limit
	err        error // returned once samples run out
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.offset >= len(m.samples) {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := min(len(buf)/2, len(m.samples)-m.offset)
	if m.frame > 0 {
		n = min(n, m.frame)
	}
	for i := range n {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += n

	return n * 2, nil
}

func newMockSource(r *mockMP3Reader) *source {
	return &source{dec: r, sampleRate: r.sampleRate}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotMP3File) {
			t.Errorf("Decode(%q) error = %v, want ErrNotMP3File", data, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{22050, 44100, 48000} {
		src := newMockSource(&mockMP3Reader{sampleRate: rate})
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
		if src.Channels() != 2 {
			t.Errorf("Channels() = %d, want 2", src.Channels())
		}
	}
}

func TestSource_ConversionAccuracy(t *testing.T) {
	t.Parallel()

	src := newMockSource(&mockMP3Reader{
		sampleRate: 44100,
		samples:    []int16{0, 16384, -16384, 32767, -32768, 1},
	})

	got := audio.ReadAll(src, 4)
	want := []audio.Sample{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 1.0 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_FillsAcrossFrames(t *testing.T) {
	t.Parallel()

	// go-mp3 hands out one frame per Read; a request spanning several
	// frames must still come back full.
	src := newMockSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 25), frame: 4})

	buf := make([]audio.Sample, 10)
	for i, want := range []int{10, 10, 5, 0} {
		if n := src.WriteSamples(buf); n != want {
			t.Errorf("call %d: WriteSamples() = %d, want %d", i, n, want)
		}
	}
	if src.Err() != nil {
		t.Errorf("Err() = %v, want nil", src.Err())
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad frame")
	src := newMockSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 3), err: boom})

	buf := make([]audio.Sample, 8)
	if n := src.WriteSamples(buf); n != 3 {
		t.Errorf("WriteSamples() = %d, want 3", n)
	}
	if !errors.Is(src.Err(), boom) {
		t.Errorf("Err() = %v, want %v", src.Err(), boom)
	}
	if n := src.WriteSamples(buf); n != 0 {
		t.Errorf("WriteSamples() after end = %d, want 0", n)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	r := &mockMP3Reader{sampleRate: 44100, samples: make([]int16, 4)}
	src := newMockSource(r)
	if n := src.WriteSamples(nil); n != 0 {
		t.Errorf("WriteSamples(nil) = %d, want 0", n)
	}
	if n := src.WriteSamples(make([]audio.Sample, 4)); n != 4 {
		t.Errorf("WriteSamples() = %d, want 4", n)
	}
}

func BenchmarkSource_WriteSamples(b *testing.B) {
	r := &mockMP3Reader{sampleRate: 44100, samples: make([]int16, 1<<20), frame: 1152 * 2}
	src := newMockSource(r)
	buf := make([]audio.Sample, 4096)

	b.ReportAllocs()

	for b.Loop() {
		if src.WriteSamples(buf) < len(buf) {
			r.offset = 0
			src.done = false
		}
	}
}
