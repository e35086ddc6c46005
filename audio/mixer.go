// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Mixer sums any number of sources that share its channel count and
// sample rate. The sum is hard-clipped to [-1,1].
//
// A source that returns fewer samples than asked for is removed; the part
// it did not write counts as silence. The mixer itself keeps returning full
// buffers for as long as it had at least one source when the call started,
// and returns 0 from then on once it runs empty.
type Mixer struct {
	channels   int
	sampleRate int
	sources    []Source
	scratch    []Sample
	done       bool
}

func NewMixer(channels, sampleRate int, srcs ...Source) (*Mixer, error) {
	if err := checkFormat(channels, sampleRate); err != nil {
		return nil, fmt.Errorf("new mixer: %w", err)
	}

	m := &Mixer{
		channels:   channels,
		sampleRate: sampleRate,
		scratch:    make([]Sample, 4096),
	}
	for _, src := range srcs {
		if err := m.Add(src); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends src to the active set. Sources are only accepted while the
// mixer has not signalled its own end.
func (m *Mixer) Add(src Source) error {
	if src.Channels() != m.channels || src.SampleRate() != m.sampleRate {
		return fmt.Errorf("mixer add: %w (got %dch@%dHz, want %dch@%dHz)",
			ErrFormatMismatch, src.Channels(), src.SampleRate(),
			m.channels, m.sampleRate)
	}
	if m.done {
		return fmt.Errorf("mixer add: %w", ErrMixerDone)
	}
	m.sources = append(m.sources, src)
	return nil
}

// Len returns the number of active sources.
func (m *Mixer) Len() int { return len(m.sources) }

func (m *Mixer) Channels() int   { return m.channels }
func (m *Mixer) SampleRate() int { return m.sampleRate }

func (m *Mixer) WriteSamples(buf []Sample) int {
	if len(buf) == 0 {
		return 0
	}
	if len(m.sources) == 0 {
		m.done = true
	}
	if m.done {
		return 0
	}

	if cap(m.scratch) < len(buf) {
		m.scratch = make([]Sample, len(buf))
	}
	scratch := m.scratch[:len(buf)]

	clear(buf)
	active := m.sources[:0]
	for _, src := range m.sources {
		n := src.WriteSamples(scratch)
		for i, v := range scratch[:n] {
			buf[i] += v
		}
		if n == len(scratch) {
			active = append(active, src)
		}
	}
	clear(m.sources[len(active):])
	m.sources = active

	for i, v := range buf {
		if v > 1 {
			buf[i] = 1
		} else if v < -1 {
			buf[i] = -1
		}
	}

	return len(buf)
}
