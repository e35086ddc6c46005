// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, which decodes directly
// to interleaved float32 samples at the channel count and sample rate of
// the stream:
//
//	file, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// A corrupt packet part way through ends the stream early; the source's
// Err method reports the cause.
package vorbis
