// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/boop/utils"
)

// ReadAll drains src and returns every sample it produces. bufferSize is
// the size of each pull; values below the channel count fall back to 4096.
//
// It is the bridge from a streaming decoder to an in-memory Player:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	p, _ := audio.NewPlayer(src.Channels(), src.SampleRate(), audio.ReadAll(src, 4096))
func ReadAll(src Source, bufferSize int) []Sample {
	if bufferSize < src.Channels() {
		bufferSize = 4096
	}

	buf := make([]Sample, bufferSize)
	var out []Sample
	for {
		n := src.WriteSamples(buf)
		out = append(out, buf[:n]...)
		if n < len(buf) {
			return out
		}
	}
}

// ResampleToMono16 is a high-level convenience function that resamples audio to a target
// sample rate, converts it to mono, and collects all samples as 16-bit PCM data.
//
// This function creates a processing pipeline:
//  1. Resamples the source audio to targetRate with the polyphase Resampler
//  2. Converts the resampled audio to mono by averaging channels
//  3. Reads all samples from the pipeline
//  4. Converts float32 samples to int16 PCM format
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := audio.ResampleToMono16(src, 8000, 4096)
//	if err != nil {
//	    panic(err)
//	}
//	// pcm16 now contains mono 16-bit PCM at 8kHz
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	// Create the processing pipeline: resample -> mono
	resampler, err := NewResampler(src, targetRate)
	if err != nil {
		return nil, targetRate, fmt.Errorf("%w", err)
	}
	mono, err := NewRechanneler(resampler, Mono)
	if err != nil {
		return nil, targetRate, fmt.Errorf("%w", err)
	}

	samples := ReadAll(mono, bufferSize)
	pcm16 := make([]int16, len(samples))
	utils.Float32sToInt16s(pcm16, samples)

	return pcm16, targetRate, nil
}
