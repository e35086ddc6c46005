// SPDX-License-Identifier: EPL-2.0

// Package audio provides the pull-based audio pipeline.
//
// This package contains the core audio processing building blocks:
//   - Source interface, the contract every stage implements
//   - Player, a finite in-memory source
//   - Rechanneler for channel count conversion
//   - Resampler for sample rate conversion
//   - Mixer for summing several sources
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    Channels() int
//	    SampleRate() int
//	    WriteSamples(buf []Sample) int
//	}
//
// WriteSamples fills buf from the start with interleaved samples and
// returns the count. A count lower than len(buf) marks the end of the
// stream; from then on WriteSamples writes nothing and returns 0. The
// channel count and sample rate never change over the life of a Source.
//
// A Source is stateful and must be driven by a single consumer at a time.
//
// # Building a Pipeline
//
// Stages wrap each other. A mono 22.05kHz clip becomes stereo 48kHz like
// this:
//
//	p, _ := audio.NewPlayer(audio.Mono, 22050, samples)
//	st, _ := audio.NewRechanneler(p, audio.Stereo)
//	rs, _ := audio.NewResampler(st, audio.Rate48000)
//
// Several sources of the same format can then be combined:
//
//	mix, _ := audio.NewMixer(audio.Stereo, audio.Rate48000, rs, other)
//
// # Resampling
//
// The Resampler is a windowed-sinc polyphase filter. Coefficients for
// positions between the precomputed phases are obtained with cubic
// interpolation. The position is kept exactly across calls, so a stream
// read in small chunks is identical to one read in a single call.
//
// # Channel Mixing
//
// The Rechanneler duplicates channels cyclically when upmixing and
// averages them when downmixing. Stereo to mono is (L+R)/2; mono to
// stereo copies the sample into both channels.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Sample Format
//
// Audio samples are float32, nominally in the range [-1.0, 1.0]. Stages do
// not clamp, except for the Mixer which clips its sum. Conversion to the
// native device encoding happens at the output stream.
package audio
