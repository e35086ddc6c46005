// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding goes through github.com/go-audio/wav and supports integer PCM
// of 8, 16, 24 or 32 bits with any channel count and sample rate. The
// returned source yields float samples in [-1, 1):
//
//	file, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	samples := audio.ReadAll(src, 4096)
//
// A read error part way through the data ends the stream early. The
// source returned by Decode has an Err method that reports it.
//
// # Writing
//
// WriteWAV16 writes an in-memory int16 buffer to any io.Writer:
//
//	err := wav.WriteWAV16(w, 8000, 1, pcm)
//
// Encode drains an audio.Source into an io.WriteSeeker such as an
// *os.File, without holding the whole stream in memory:
//
//	frames, err := wav.Encode(file, mixer)
package wav
