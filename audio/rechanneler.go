// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Rechanneler maps the frames of src onto a different channel count while
// keeping the sample rate.
//
// Upmixing copies input channel c%N into output channel c, so mono becomes
// duplicated stereo. Downmixing averages every input channel i with
// i%M == c into output channel c, so stereo becomes the mean of left and
// right. With this policy mono->stereo->mono is lossless.
type Rechanneler struct {
	src      Source
	channels int
	tmp      []Sample
	aligner  frameAligner
}

func NewRechanneler(src Source, channels int) (*Rechanneler, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("new rechanneler: %w", ErrInvalidChannelCount)
	}
	return &Rechanneler{
		src:      src,
		channels: channels,
		tmp:      make([]Sample, 4096),
		aligner:  newFrameAligner(channels),
	}, nil
}

func (r *Rechanneler) SampleRate() int { return r.src.SampleRate() }
func (r *Rechanneler) Channels() int   { return r.channels }

func (r *Rechanneler) WriteSamples(buf []Sample) int {
	if len(buf) == 0 {
		return 0
	}
	if r.src.Channels() == r.channels {
		// Pass-through
		return r.src.WriteSamples(buf)
	}
	return r.aligner.write(buf, r.fill)
}

// fill pulls exactly len(dst)/r.channels frames from src.
func (r *Rechanneler) fill(dst []Sample) int {
	inChannels := r.src.Channels()
	maxFrames := len(dst) / r.channels
	samplesNeeded := maxFrames * inChannels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(r.tmp) < samplesNeeded {
		r.tmp = make([]Sample, max(samplesNeeded, 8192))
	}
	in := r.tmp[:samplesNeeded]

	n := r.src.WriteSamples(in)
	frames := n / inChannels

	switch {
	case inChannels == 1:
		// Mono fan-out, the most common upmix.
		for f := range frames {
			v := in[f]
			out := dst[f*r.channels : (f+1)*r.channels]
			for c := range out {
				out[c] = v
			}
		}
	case inChannels == 2 && r.channels == 1:
		for f := range frames {
			idx := f << 1 // f * 2
			dst[f] = (in[idx] + in[idx+1]) * 0.5
		}
	case inChannels < r.channels:
		for f := range frames {
			src := in[f*inChannels : (f+1)*inChannels]
			out := dst[f*r.channels : (f+1)*r.channels]
			for c := range out {
				out[c] = src[c%inChannels]
			}
		}
	default:
		r.downmix(dst, in, frames, inChannels)
	}

	return frames
}

// downmix averages input channels into fewer output channels. Output
// channel c receives the inputs c, c+M, c+2M, ...
func (r *Rechanneler) downmix(dst, in []Sample, frames, inChannels int) {
	for f := range frames {
		src := in[f*inChannels : (f+1)*inChannels]
		out := dst[f*r.channels : (f+1)*r.channels]
		for c := range out {
			var sum Sample
			count := 0
			for i := c; i < inChannels; i += r.channels {
				sum += src[i]
				count++
			}
			out[c] = sum / Sample(count)
		}
	}
}
