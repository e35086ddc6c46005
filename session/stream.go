// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"sync"

	"github.com/decred/slog"

	"github.com/ik5/boop/audio"
)

// OutputStream plays sources on one activated device. It is single use:
// the stream closes itself once Play returns.
type OutputStream struct {
	mtx    sync.Mutex
	client renderClient
	format Format
	device Device
	log    slog.Logger
	closed bool
}

// Format returns the negotiated native format. Sources given to Play must
// match its channel count and sample rate.
func (s *OutputStream) Format() Format { return s.format }

func (s *OutputStream) Device() Device { return s.device }

// Play renders src until it is exhausted and every produced sample was
// played out, or until the device fails. It blocks for the whole
// playback.
func (s *OutputStream) Play(src audio.Source) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return ErrStreamClosed
	}
	if src.Channels() != s.format.Channels || src.SampleRate() != s.format.SampleRate {
		return fmt.Errorf("%w: source is %d Hz %d ch, stream is %s",
			ErrFormatMismatch, src.SampleRate(), src.Channels(), s.format)
	}

	err := render(s.client, s.format, src, s.log)
	if cerr := s.closeLocked(); cerr != nil {
		s.log.Warnf("Unable to close output stream: %v", cerr)
	}
	return err
}

// Close releases the native client. It waits for a running Play.
func (s *OutputStream) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.closeLocked()
}

func (s *OutputStream) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return classify(s.client.Close())
}
