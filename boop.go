// SPDX-License-Identifier: EPL-2.0

package boop

import (
	"fmt"

	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/session"
)

// Adapt returns src converted to the given channel count and sample rate.
// Stages that would not change anything are left out, so a source that
// already matches is returned as is.
//
// When the channel count goes down the Rechanneler runs first, so the
// Resampler filters fewer channels.
func Adapt(src audio.Source, channels, rate int) (audio.Source, error) {
	var err error
	rechannel := func() {
		if err == nil && src.Channels() != channels {
			src, err = audio.NewRechanneler(src, channels)
		}
	}
	resample := func() {
		if err == nil && src.SampleRate() != rate {
			src, err = audio.NewResampler(src, rate)
		}
	}

	if channels < src.Channels() {
		rechannel()
		resample()
	} else {
		resample()
		rechannel()
	}
	if err != nil {
		return nil, fmt.Errorf("adapt to %d Hz %d ch: %w", rate, channels, err)
	}
	return src, nil
}

// Play plays src on the default output of api and returns once it has
// been played out. The session is closed before Play returns.
func Play(api session.Api, src audio.Source, opts ...session.Option) error {
	s, err := session.New(api, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	dev, err := s.DefaultDevice(session.Output)
	if err != nil {
		return err
	}
	return PlayOn(s, dev, src)
}

// PlayOn opens dev on s, converts src to the negotiated format and plays
// it.
func PlayOn(s *session.Session, dev session.Device, src audio.Source) error {
	stream, err := s.OpenOutputStream(dev)
	if err != nil {
		return err
	}
	defer stream.Close()

	f := stream.Format()
	adapted, err := Adapt(src, f.Channels, f.SampleRate)
	if err != nil {
		return err
	}
	return stream.Play(adapted)
}
