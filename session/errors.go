// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
)

var (
	ErrApiNotAvailable    = errors.New("audio api not available in this build")
	ErrSystemResources    = errors.New("system resources exhausted")
	ErrNoDeviceAvailable  = errors.New("no device available")
	ErrNoOutputDevice     = errors.New("no default output device")
	ErrDeviceNotAvailable = errors.New("device no longer available")
	ErrDeviceNotUsable    = errors.New("device format not usable")
	ErrUnknown            = errors.New("unknown backend failure")
	ErrSessionClosed      = errors.New("session closed")
	ErrStreamClosed       = errors.New("output stream closed")
	ErrFormatMismatch     = errors.New("source format does not match the stream")
)

var taxonomy = []error{
	ErrApiNotAvailable,
	ErrSystemResources,
	ErrNoDeviceAvailable,
	ErrNoOutputDevice,
	ErrDeviceNotAvailable,
	ErrDeviceNotUsable,
	ErrUnknown,
	ErrSessionClosed,
	ErrStreamClosed,
	ErrFormatMismatch,
}

// classify returns err unchanged when it already carries one of the
// package errors. Anything else collapses to ErrUnknown with the cause
// kept in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range taxonomy {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrUnknown, err)
}

// noDefaultDevice is the error for a direction without a default device.
// A missing output matches both ErrNoDeviceAvailable and ErrNoOutputDevice.
func noDefaultDevice(typ DeviceType) error {
	if typ == Output {
		return fmt.Errorf("%w: %w", ErrNoDeviceAvailable, ErrNoOutputDevice)
	}
	return fmt.Errorf("%w: no default %s device", ErrNoDeviceAvailable, typ)
}
