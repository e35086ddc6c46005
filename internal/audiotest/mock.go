// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int // Total frames to generate
	generated   int // Samples generated so far
	waveform    func(frame int, channel int) float32

	// Calls counts WriteSamples invocations, Requested sums the buffer
	// lengths passed in.
	Calls     int
	Requested int
}

// NewMockSource creates a new mock audio source.
// totalFrames is the total number of frames (samples per channel) to generate.
// waveform is a function that generates sample values given frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return value
	})
}

// NewRampSource creates a mock source whose n-th sample is n+1, which makes
// reordering and loss easy to spot.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return float32(frame*channels + channel + 1)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

// Total returns the number of samples the source produces overall.
func (m *MockSource) Total() int { return m.totalFrames * m.channels }

// Generated returns the number of samples produced so far.
func (m *MockSource) Generated() int { return m.generated }

func (m *MockSource) WriteSamples(dst []float32) int {
	m.Calls++
	m.Requested += len(dst)

	n := min(len(dst), m.Total()-m.generated)
	for i := range n {
		idx := m.generated + i
		dst[i] = m.waveform(idx/m.channels, idx%m.channels)
	}
	m.generated += n

	return n
}
