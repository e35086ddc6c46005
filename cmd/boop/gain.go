// SPDX-License-Identifier: EPL-2.0

package main

import "github.com/ik5/boop/audio"

// gainSource scales every sample of the wrapped source.
type gainSource struct {
	audio.Source
	gain float32
}

func withGain(src audio.Source, gain float64) audio.Source {
	if gain == 1 {
		return src
	}
	return &gainSource{Source: src, gain: float32(gain)}
}

func (g *gainSource) WriteSamples(buf []audio.Sample) int {
	n := g.Source.WriteSamples(buf)
	for i := range buf[:n] {
		buf[i] *= g.gain
	}
	return n
}
