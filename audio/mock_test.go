// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/boop/internal/audiotest"
)

// Shorthands over the shared audiotest sources.

func newMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *audiotest.MockSource {
	return audiotest.NewMockSource(sampleRate, channels, totalFrames, waveform)
}

func newSilentSource(sampleRate, channels, totalFrames int) *audiotest.MockSource {
	return audiotest.NewSilentSource(sampleRate, channels, totalFrames)
}

func newSineSource(sampleRate, channels, totalFrames int, frequency float64) *audiotest.MockSource {
	return audiotest.NewSineSource(sampleRate, channels, totalFrames, frequency)
}

func newConstantSource(sampleRate, channels, totalFrames int, value float32) *audiotest.MockSource {
	return audiotest.NewConstantSource(sampleRate, channels, totalFrames, value)
}
