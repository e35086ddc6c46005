// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidChannelCount = errors.New("channel count must be positive")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrFormatMismatch      = errors.New("source channel count or sample rate mismatch")
	ErrMixerDone           = errors.New("mixer has already run empty")
)
