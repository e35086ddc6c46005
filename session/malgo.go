// SPDX-License-Identifier: EPL-2.0

//go:build cgo && !noaudio

package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

func init() {
	registerBackend(Malgo, newMalgoEnumerator)
}

// mapMalgoErr translates a miniaudio result into the package errors.
func mapMalgoErr(err error) error {
	isAny := func(targets ...error) bool {
		for _, t := range targets {
			if errors.Is(err, t) {
				return true
			}
		}
		return false
	}

	switch {
	case err == nil:
		return nil
	case isAny(malgo.ErrOutOfMemory, malgo.ErrTooManyOpenFiles):
		return fmt.Errorf("%w: %w", ErrSystemResources, err)
	case isAny(malgo.ErrNoBackend, malgo.ErrFailedToInitBackend, malgo.ErrAPINotFound):
		return fmt.Errorf("%w: %w", ErrApiNotAvailable, err)
	case isAny(malgo.ErrNoDevice):
		return fmt.Errorf("%w: %w", ErrNoDeviceAvailable, err)
	case isAny(malgo.ErrDeviceNotInitialized, malgo.ErrFailedToOpenBackendDevice,
		malgo.ErrFailedToStartBackendDevice):
		return fmt.Errorf("%w: %w", ErrDeviceNotAvailable, err)
	case isAny(malgo.ErrFormatNotSupported, malgo.ErrShareModeNotSupported,
		malgo.ErrDeviceTypeNotSupported):
		return fmt.Errorf("%w: %w", ErrDeviceNotUsable, err)
	default:
		return classify(err)
	}
}

func toMalgoFormat(f SampleFormat) malgo.FormatType {
	switch f {
	case FormatI16:
		return malgo.FormatS16
	case FormatF32:
		return malgo.FormatF32
	default:
		return malgo.FormatUnknown
	}
}

func fromMalgoFormat(f malgo.FormatType) SampleFormat {
	switch f {
	case malgo.FormatS16:
		return FormatI16
	case malgo.FormatF32:
		return FormatF32
	default:
		return FormatUnknown
	}
}

// malgoEnumerator owns the miniaudio context of a session. The context is
// never uninitialised.
type malgoEnumerator struct {
	ctx *malgo.AllocatedContext
	cfg config
}

func newMalgoEnumerator(cfg config) (enumerator, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, mapMalgoErr(err)
	}
	return &malgoEnumerator{ctx: ctx, cfg: cfg}, nil
}

func (e *malgoEnumerator) list(kind malgo.DeviceType, typ DeviceType) ([]Device, error) {
	infos, err := e.ctx.Devices(kind)
	if err != nil {
		return nil, mapMalgoErr(err)
	}

	res := make([]Device, 0, len(infos))
	seen := make(map[malgo.DeviceID]struct{}, len(infos))
	for _, info := range infos {
		full, err := e.ctx.DeviceInfo(kind, info.ID, malgo.Shared)
		if err != nil {
			e.cfg.log.Warnf("Unable to get info of %s device %q: %v", typ, info.Name(), err)
			continue
		}

		// Some backends list the same endpoint twice.
		if _, dup := seen[full.ID]; dup {
			continue
		}
		seen[full.ID] = struct{}{}

		id := full.ID
		dev, err := newDevice(Malgo, hex.EncodeToString(id[:]), full.Name(), typ, full.IsDefault == 1,
			e.cfg.format, &id)
		if err != nil {
			e.cfg.log.Warnf("Skipping %s device: %v", typ, err)
			continue
		}
		res = append(res, dev)
	}
	return res, nil
}

// pickDefault returns the flagged default of devs. When devices exist but
// none is flagged, the backend's own default endpoint is used.
func pickDefault(devs []Device) *Device {
	for i := range devs {
		if devs[i].IsDefault {
			d := devs[i]
			return &d
		}
	}
	if len(devs) == 0 {
		return nil
	}
	d := devs[0]
	d.ID = ""
	d.Name = "System default"
	d.IsDefault = true
	d.handle = nil
	return &d
}

func (e *malgoEnumerator) query() (deviceState, error) {
	outs, err := e.list(malgo.Playback, Output)
	if err != nil {
		return deviceState{}, fmt.Errorf("list playback devices: %w", err)
	}
	ins, err := e.list(malgo.Capture, Input)
	if err != nil {
		return deviceState{}, fmt.Errorf("list capture devices: %w", err)
	}
	return deviceState{
		defaultOutput: pickDefault(outs),
		defaultInput:  pickDefault(ins),
		all:           append(outs, ins...),
	}, nil
}

func (e *malgoEnumerator) activate(dev Device) (renderClient, Format, error) {
	want := dev.Format

	devCfg := malgo.DefaultDeviceConfig(malgo.Playback)
	devCfg.Playback.Format = toMalgoFormat(want.SampleFormat)
	devCfg.Playback.Channels = uint32(want.Channels)
	devCfg.SampleRate = uint32(want.SampleRate)
	devCfg.PeriodSizeInMilliseconds = uint32(max(1, e.cfg.bufferDuration.Milliseconds()/4))
	devCfg.Alsa.NoMMap = 1
	if id, ok := dev.handle.(*malgo.DeviceID); ok && id != nil {
		devCfg.Playback.DeviceID = id.Pointer()
	}

	// The callbacks only fire after Start, by which time rc is set.
	var rc atomic.Pointer[ringClient]
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			if c := rc.Load(); c != nil {
				c.pull(out)
				return
			}
			clear(out)
		},
		Stop: func() {
			if c := rc.Load(); c != nil {
				c.invalidate()
			}
		},
	}

	device, err := malgo.InitDevice(e.ctx.Context, devCfg, callbacks)
	if err != nil {
		return nil, Format{}, mapMalgoErr(err)
	}

	got := Format{
		Channels:     int(device.PlaybackChannels()),
		SampleRate:   int(device.SampleRate()),
		SampleFormat: fromMalgoFormat(device.PlaybackFormat()),
	}
	if err := got.Validate(); err != nil {
		device.Uninit()
		return nil, Format{}, err
	}

	c := newRingClient(got, bufferFrames(got, e.cfg))
	c.tr = &malgoTransport{dev: device}
	rc.Store(c)
	return c, got, nil
}

type malgoTransport struct {
	dev *malgo.Device
}

func (t *malgoTransport) Start() error {
	if err := t.dev.Start(); err != nil {
		return mapMalgoErr(err)
	}
	return nil
}

func (t *malgoTransport) Stop() error {
	if err := t.dev.Stop(); err != nil {
		return mapMalgoErr(err)
	}
	return nil
}

// Buffered is zero: miniaudio hands the callback the period it is about
// to play.
func (t *malgoTransport) Buffered() int { return 0 }

func (t *malgoTransport) Close() error {
	t.dev.Uninit()
	return nil
}
