// SPDX-License-Identifier: EPL-2.0

package audio

// frameFiller writes whole frames into dst (len(dst) is always a multiple
// of the channel count) and returns the number of frames written. Fewer
// frames than requested means the stream has ended.
type frameFiller func(dst []Sample) int

// frameAligner lets a frame-oriented stage serve buffers whose length is
// not a multiple of its channel count. The tail of a frame that did not
// fit is held back and written first on the next call.
type frameAligner struct {
	channels int
	frame    []Sample
	pending  []Sample
	done     bool
}

func newFrameAligner(channels int) frameAligner {
	return frameAligner{
		channels: channels,
		frame:    make([]Sample, channels),
	}
}

func (a *frameAligner) write(buf []Sample, fill frameFiller) int {
	n := copy(buf, a.pending)
	a.pending = a.pending[n:]
	if n == len(buf) || a.done {
		return n
	}

	if whole := (len(buf) - n) / a.channels * a.channels; whole > 0 {
		frames := fill(buf[n : n+whole])
		n += frames * a.channels
		if frames*a.channels < whole {
			a.done = true
			return n
		}
	}

	if n < len(buf) {
		if fill(a.frame) < 1 {
			a.done = true
			return n
		}
		c := copy(buf[n:], a.frame)
		n += c
		a.pending = a.frame[c:]
	}

	return n
}
