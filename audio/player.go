// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Player plays back a fixed, in-memory sample buffer once. It does not
// loop: once the end of the buffer is reached WriteSamples returns 0
// forever.
//
// If the samples have a different rate than the output they are played
// at, the result sounds sped up or slowed down. Wrap the Player in a
// Resampler to fix that.
type Player struct {
	samples    []Sample
	channels   int
	sampleRate int
	offset     int
}

// NewPlayer returns a Player over samples, which must be interleaved with
// the given channel count.
func NewPlayer(channels, sampleRate int, samples []Sample) (*Player, error) {
	if err := checkFormat(channels, sampleRate); err != nil {
		return nil, fmt.Errorf("new player: %w", err)
	}
	return &Player{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
	}, nil
}

func (p *Player) Channels() int   { return p.channels }
func (p *Player) SampleRate() int { return p.sampleRate }

// Remaining returns the number of samples not yet written.
func (p *Player) Remaining() int { return len(p.samples) - p.offset }

func (p *Player) WriteSamples(buf []Sample) int {
	n := copy(buf, p.samples[p.offset:])
	p.offset += n
	return n
}
