// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. The decoder always
// produces stereo at the sample rate of the stream; mono files are
// duplicated into both channels by go-mp3.
//
//	file, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// To convert to mono or resample, wrap the source:
//
//	mono, _ := audio.NewRechanneler(src, audio.Mono)
//	resampled, _ := audio.NewResampler(mono, 8000)
//
// A corrupt frame part way through ends the stream early; the source's
// Err method reports the cause.
package mp3
