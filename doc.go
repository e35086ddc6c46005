// SPDX-License-Identifier: EPL-2.0

// Package boop plays audio with low latency through a pull based sample
// pipeline.
//
// The work is split over a few packages:
//   - audio: the Source contract and the Player, Rechanneler, Resampler
//     and Mixer stages
//   - session: backends, devices and the blocking render loop
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//     that turn files into sources
//
// This package ties them together. The shortest path from a file to the
// speakers:
//
//	src, closer, err := boop.Open(boop.NewRegistry(), "song.ogg")
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	err = boop.Play(session.Malgo, src)
//
// Play opens a session, takes the default output device, converts the
// source to the device format with Adapt, and blocks until the last
// sample was played.
//
// # Adapting Sources
//
// Adapt inserts a Rechanneler and a Resampler where needed:
//
//	p, _ := audio.NewPlayer(audio.Mono, 22050, samples)
//	out, _ := boop.Adapt(p, audio.Stereo, audio.Rate48000)
//
// # Several Sources
//
// Adapt each source to a common format and sum them with an audio.Mixer:
//
//	a, _ := boop.Adapt(voice, 2, 48000)
//	b, _ := boop.Adapt(music, 2, 48000)
//	mix, _ := audio.NewMixer(2, 48000, a, b)
//	err := boop.Play(session.Malgo, mix)
//
// # Backends
//
// The no-op backend is always present and is handy in tests. malgo and oto
// need cgo and are left out with the noaudio build tag.
package boop
