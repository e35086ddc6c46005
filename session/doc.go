// SPDX-License-Identifier: EPL-2.0

// Package session connects audio.Source pipelines to output devices.
//
// A Session wraps one backend, chosen by Api. The no-op backend is always
// available; malgo (miniaudio) and oto are compiled in when cgo is enabled
// and the noaudio build tag is absent:
//
//	s, err := session.New(session.Malgo)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	dev, err := s.DefaultDevice(session.Output)
//	if err != nil {
//	    return err
//	}
//	stream, err := s.OpenOutputStream(dev)
//	if err != nil {
//	    return err
//	}
//	err = stream.Play(src) // blocks until src is played out
//
// # Device thread
//
// Each session owns a goroutine locked to its OS thread. It creates the
// backend state, answers every enumeration and activation request, and is
// the only code that touches the backend's device objects. Requests are
// queued and processed in FIFO order, so DefaultDevice, which enqueues a
// refresh followed by a lookup, always sees a state at least as new as
// the call. Close terminates the thread and waits for it.
//
// # Rendering
//
// OutputStream.Play primes the backend buffer, starts the transport and
// refills the buffer each time the backend signals it consumed data. When
// the source ends, silence is written until the buffer holds nothing else,
// which guarantees the last produced sample was played before the
// transport stops. Play has no cancellation; it returns when playback is
// complete or the device fails.
//
// The source must already match the stream format (OutputStream.Format);
// the root boop package builds the conversion chain.
//
// # Errors
//
// Every failure carries one of the package errors, so callers can use
// errors.Is. ErrDeviceNotAvailable means the device disappeared; it is
// never retried.
package session
