// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestNewPlayer_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewPlayer(0, 48000, nil); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("NewPlayer(0, ...) error = %v, want ErrInvalidChannelCount", err)
	}
	if _, err := NewPlayer(2, 0, nil); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("NewPlayer(..., 0) error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestPlayer_WriteSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		length  int
		bufSize int
	}{
		{"buffer larger than data", 10, 64},
		{"buffer equals data", 64, 64},
		{"buffer smaller than data", 100, 7},
		{"empty data", 0, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]Sample, tt.length)
			for i := range samples {
				samples[i] = Sample(i + 1)
			}
			p, err := NewPlayer(Mono, Rate48000, samples)
			if err != nil {
				t.Fatalf("NewPlayer() error = %v", err)
			}

			var got []Sample
			buf := make([]Sample, tt.bufSize)
			for {
				want := min(len(buf), p.Remaining())
				n := p.WriteSamples(buf)
				if n != want {
					t.Fatalf("WriteSamples() = %d, want %d", n, want)
				}
				got = append(got, buf[:n]...)
				if n < len(buf) {
					break
				}
			}

			if len(got) != tt.length {
				t.Fatalf("played %d samples, want %d", len(got), tt.length)
			}
			for i, v := range got {
				if v != Sample(i+1) {
					t.Fatalf("sample %d = %v, want %v", i, v, i+1)
				}
			}

			for range 3 {
				for i := range buf {
					buf[i] = -7
				}
				if n := p.WriteSamples(buf); n != 0 {
					t.Errorf("WriteSamples() after end = %d, want 0", n)
				}
				for i, v := range buf {
					if v != -7 {
						t.Fatalf("buf[%d] = %v after end, want it untouched", i, v)
					}
				}
			}
		})
	}
}

func TestPlayer_Format(t *testing.T) {
	t.Parallel()

	p, err := NewPlayer(Stereo, Rate44100, make([]Sample, 8))
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	if p.Channels() != Stereo || p.SampleRate() != Rate44100 {
		t.Errorf("format = %dch@%dHz, want 2ch@44100Hz", p.Channels(), p.SampleRate())
	}
	if p.Remaining() != 8 {
		t.Errorf("Remaining() = %d, want 8", p.Remaining())
	}
}
