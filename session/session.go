// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/decred/slog"
)

// DefaultBufferDuration is the backend buffer length used when
// WithBufferDuration is not given.
const DefaultBufferDuration = 100 * time.Millisecond

// Option configures a Session.
type Option func(*config)

// WithFormat sets the preferred shared-mode format devices are opened
// with.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithBufferDuration sets the length of the backend buffer. Non-positive
// values keep the default.
func WithBufferDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.bufferDuration = d
		}
	}
}

func WithLogger(l slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Session is a connection to one audio backend. All device enumeration
// and activation happens on a dedicated thread owned by the session.
type Session struct {
	api    Api
	cfg    config
	thread *devThread

	closeOnce sync.Once
}

// New starts a session on api. It fails with ErrApiNotAvailable when the
// backend is not compiled into this binary.
func New(api Api, opts ...Option) (*Session, error) {
	newEnum, err := lookupBackend(api)
	if err != nil {
		return nil, err
	}
	return newSession(api, newEnum, opts...)
}

func newSession(api Api, newEnum enumeratorFactory, opts ...Option) (*Session, error) {
	cfg := config{
		format:         DefaultFormat,
		bufferDuration: DefaultBufferDuration,
		log:            log,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.format.Validate(); err != nil {
		return nil, fmt.Errorf("preferred format: %w", err)
	}

	thread, err := startDevThread(newEnum, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s session: %w", api, err)
	}
	cfg.log.Debugf("Started %s session (%s, %s buffer)", api, cfg.format,
		cfg.bufferDuration)

	return &Session{api: api, cfg: cfg, thread: thread}, nil
}

// Api returns the backend of the session.
func (s *Session) Api() Api { return s.api }

// DefaultDevice refreshes the device state and returns the default
// endpoint of direction typ. The result is never older than the call.
func (s *Session) DefaultDevice(typ DeviceType) (Device, error) {
	refresh := newThreadResult[struct{}]()
	get := newThreadResult[Device]()
	if err := s.thread.send(refreshMsg{res: refresh}, getDefaultMsg{typ: typ, res: get}); err != nil {
		return Device{}, err
	}
	if _, err := refresh.wait(); err != nil {
		return Device{}, fmt.Errorf("refresh devices: %w", err)
	}
	return get.wait()
}

// Devices refreshes the device state and returns every endpoint of both
// directions.
func (s *Session) Devices() ([]Device, error) {
	refresh := newThreadResult[struct{}]()
	list := newThreadResult[[]Device]()
	if err := s.thread.send(refreshMsg{res: refresh}, listMsg{res: list}); err != nil {
		return nil, err
	}
	if _, err := refresh.wait(); err != nil {
		return nil, fmt.Errorf("refresh devices: %w", err)
	}
	return list.wait()
}

// OpenOutputStream activates dev for playback. The native client is
// created on the session's device thread.
func (s *Session) OpenOutputStream(dev Device) (*OutputStream, error) {
	if dev.Type != Output {
		return nil, fmt.Errorf("%w: %s is not an output device", ErrDeviceNotUsable, dev.Name)
	}
	if dev.api != s.api {
		return nil, fmt.Errorf("%w: %s device on a %s session", ErrDeviceNotUsable,
			dev.api, s.api)
	}

	res := newThreadResult[activation]()
	if err := s.thread.send(activateMsg{dev: dev, res: res}); err != nil {
		return nil, err
	}
	act, err := res.wait()
	if err != nil {
		return nil, fmt.Errorf("activate %q: %w", dev.Name, err)
	}
	if err := act.format.Validate(); err != nil {
		act.client.Close()
		return nil, fmt.Errorf("activate %q: %w", dev.Name, err)
	}

	s.cfg.log.Debugf("Opened output stream on %q (%s, %d frame buffer)", dev.Name,
		act.format, act.client.BufferFrames())
	return &OutputStream{
		client: act.client,
		format: act.format,
		device: dev,
		log:    s.cfg.log,
	}, nil
}

// Close stops the device thread and waits for it to exit. Calls after the
// first are no-ops. Open output streams stay usable.
func (s *Session) Close() error {
	s.closeOnce.Do(s.thread.terminate)
	return nil
}
