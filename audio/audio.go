// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Sample is a single PCM amplitude. The nominal range is [-1,1] but the
// model itself never clamps; that is left to the stage that needs it.
type Sample = float32

// Common channel counts and sample rates.
const (
	Mono   = 1
	Stereo = 2

	Rate8000  = 8000
	Rate16000 = 16000
	Rate44100 = 44100
	Rate48000 = 48000
)

// Source is a pull-based producer of interleaved PCM samples.
type Source interface {
	// Channels count (e.g., 1=mono, 2=stereo). Constant for the lifetime
	// of the Source.
	Channels() int
	// SampleRate of the PCM stream in Hz. Constant for the lifetime of the
	// Source.
	SampleRate() int
	// WriteSamples fills buf from index 0 with interleaved samples and
	// returns how many were written. A return value lower than len(buf)
	// means the stream has ended; every later call must write nothing and
	// return 0.
	WriteSamples(buf []Sample) int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") to decoders. Keys
// are matched case-insensitively and a leading dot is ignored, so a file
// extension can be used as is.
type Registry struct {
	mtx    sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func registryKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

// Register adds d under format, replacing any earlier decoder for it.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	r.codecs[registryKey(format)] = d
	r.mtx.Unlock()
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[registryKey(format)]
	return d, ok
}

// Formats returns the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	res := slices.Collect(maps.Keys(r.codecs))
	r.mtx.RUnlock()

	slices.Sort(res)
	return res
}

// checkFormat validates a channel count and sample rate pair.
func checkFormat(channels, sampleRate int) error {
	if channels <= 0 {
		return ErrInvalidChannelCount
	}
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	return nil
}
