// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

// SampleFormat is the native encoding of one sample on the device side.
type SampleFormat int

const (
	// FormatUnknown marks a native encoding the engine cannot write.
	FormatUnknown SampleFormat = iota
	// FormatI16 is signed 16-bit little-endian PCM.
	FormatI16
	// FormatF32 is 32-bit little-endian IEEE-754 float.
	FormatF32
)

func (f SampleFormat) String() string {
	switch f {
	case FormatI16:
		return "i16"
	case FormatF32:
		return "f32"
	default:
		return "unknown"
	}
}

// Bytes returns the encoded size of one sample, or 0 for FormatUnknown.
func (f SampleFormat) Bytes() int {
	switch f {
	case FormatI16:
		return 2
	case FormatF32:
		return 4
	default:
		return 0
	}
}

// Format is a negotiated native stream format.
type Format struct {
	Channels     int
	SampleRate   int
	SampleFormat SampleFormat
}

// DefaultFormat is the preferred shared-mode format of a new Session.
var DefaultFormat = Format{Channels: 2, SampleRate: 48000, SampleFormat: FormatF32}

// FrameBytes returns the size of one encoded frame.
func (f Format) FrameBytes() int {
	return f.Channels * f.SampleFormat.Bytes()
}

// Validate reports ErrDeviceNotUsable for a format the render loop cannot
// drive.
func (f Format) Validate() error {
	switch {
	case f.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrDeviceNotUsable, f.Channels)
	case f.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrDeviceNotUsable, f.SampleRate)
	case f.SampleFormat.Bytes() == 0:
		return fmt.Errorf("%w: sample encoding %s", ErrDeviceNotUsable, f.SampleFormat)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz %d ch %s", f.SampleRate, f.Channels, f.SampleFormat)
}
