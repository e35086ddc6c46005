// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files. Signed
// integer PCM of 8, 16, 24 and 32 bits is supported with any channel count
// and sample rate. AIFF-C compressed files are rejected.
//
//	file, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// Samples come out as float32 values normalized to [-1.0, 1.0). A read
// error ends the stream early and is reported by the source's Err method.
//
// # AIFF vs. WAV
//
// AIFF uses big-endian byte order and signed 8-bit samples, and stores the
// sample rate as an 80-bit float. The decoder handles those differences.
//
// # Example: AIFF to WAV Conversion
//
//	src, _ := aiff.Decoder{}.Decode(aiffFile)
//	pcm16, rate, _ := audio.ResampleToMono16(src, 8000, 4096)
//	wav.WriteWAV16(wavFile, rate, audio.Mono, pcm16)
package aiff
