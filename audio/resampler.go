// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/boop/utils"
)

const (
	// resamplerZeroCrossings is the number of sinc zero crossings kept on
	// each side of the filter centre.
	resamplerZeroCrossings = 16

	// resamplerPhases is the number of precomputed filter phases per input
	// sample. Positions between two phases use cubic interpolation of the
	// neighbouring coefficient sets.
	resamplerPhases = 64

	// resamplerChunkFrames is how many input frames are pulled from the
	// inner source at once.
	resamplerChunkFrames = 1024
)

// Resampler streams src at a new sample rate using a windowed-sinc
// polyphase FIR filter. Works on interleaved samples; preserves channel
// count.
//
// The read position is tracked exactly as an input frame index plus a
// remainder over the output rate, so consecutive calls continue the same
// signal with no boundary artefacts. Input before the first frame and
// after the last one is taken to repeat the edge frame, which keeps a
// constant signal constant all the way through.
type Resampler struct {
	src      Source
	channels int
	srcRate  int
	dstRate  int

	// Position advance per output frame is step/den input frames.
	step int
	den  int

	half   int         // taps on each side of the centre
	table  [][]float32 // resamplerPhases+3 rows, row i is phase i-1
	coeffs []float32

	ipos int // input frame left of the current output position
	rem  int // fractional position, rem/den

	hist      []Sample // buffered input frames, interleaved
	histStart int      // input frame index of hist[0]
	total     int      // input frames read so far
	eos       bool
	readBuf   []Sample

	aligner frameAligner
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("new resampler: %w", ErrInvalidSampleRate)
	}
	if err := checkFormat(src.Channels(), src.SampleRate()); err != nil {
		return nil, fmt.Errorf("new resampler: %w", err)
	}

	channels := src.Channels()
	srcRate := src.SampleRate()
	g := gcd(srcRate, dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  srcRate,
		dstRate:  dstRate,
		step:     srcRate / g,
		den:      dstRate / g,
		readBuf:  make([]Sample, resamplerChunkFrames*channels),
		aligner:  newFrameAligner(channels),
	}

	if srcRate != dstRate {
		r.buildTable()
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) WriteSamples(buf []Sample) int {
	if len(buf) == 0 {
		return 0
	}
	if r.srcRate == r.dstRate {
		return r.src.WriteSamples(buf)
	}
	return r.aligner.write(buf, r.fill)
}

// buildTable precomputes the Blackman-windowed sinc for every phase. When
// downsampling the cutoff moves down to the output Nyquist frequency and
// the filter widens accordingly.
func (r *Resampler) buildTable() {
	cutoff := 1.0
	if r.dstRate < r.srcRate {
		cutoff = 0.95 * float64(r.dstRate) / float64(r.srcRate)
	}
	r.half = int(math.Ceil(resamplerZeroCrossings / cutoff))
	taps := 2 * r.half

	r.table = make([][]float32, resamplerPhases+3)
	for i := range r.table {
		frac := float64(i-1) / resamplerPhases
		row := make([]float32, taps)
		for j := range row {
			x := frac + float64(r.half-1-j)
			row[j] = float32(cutoff * sinc(cutoff*x) * blackman(x/float64(r.half)))
		}
		r.table[i] = row
	}
	r.coeffs = make([]float32, taps)
}

// fill writes up to len(dst)/channels output frames.
func (r *Resampler) fill(dst []Sample) int {
	frames := len(dst) / r.channels
	for f := range frames {
		if !r.ensure() {
			return f
		}

		sum := r.computeCoeffs()
		out := dst[f*r.channels : (f+1)*r.channels]
		clear(out)
		first := r.ipos - r.half + 1
		for j, coeff := range r.coeffs {
			frame := r.frame(first + j)
			for c := range out {
				out[c] += coeff * frame[c]
			}
		}
		// Normalise so the DC gain is exactly one at every phase.
		for c := range out {
			out[c] /= sum
		}

		r.advance()
	}
	return frames
}

// ensure makes sure the history covers the filter window around ipos. It
// returns false once every output frame has been produced.
func (r *Resampler) ensure() bool {
	for !r.eos && r.ipos+r.half >= r.total {
		r.readMore()
	}
	return r.ipos < r.total
}

func (r *Resampler) readMore() {
	n := r.src.WriteSamples(r.readBuf)
	frames := n / r.channels
	if n < len(r.readBuf) {
		// A trailing partial frame is dropped.
		r.eos = true
	}
	r.hist = append(r.hist, r.readBuf[:frames*r.channels]...)
	r.total += frames
}

// frame returns input frame k, repeating the edge frames outside the
// known range.
func (r *Resampler) frame(k int) []Sample {
	k = min(max(k, 0), r.total-1)
	i := (k - r.histStart) * r.channels
	return r.hist[i : i+r.channels]
}

func (r *Resampler) computeCoeffs() float32 {
	pos := float64(r.rem) * resamplerPhases / float64(r.den)
	phase := int(pos)
	mu := float32(pos - float64(phase))

	y0 := r.table[phase]
	y1 := r.table[phase+1]
	y2 := r.table[phase+2]
	y3 := r.table[phase+3]

	var sum float32
	for j := range r.coeffs {
		v := utils.CubicInterpolate(y0[j], y1[j], y2[j], y3[j], mu)
		r.coeffs[j] = v
		sum += v
	}
	return sum
}

func (r *Resampler) advance() {
	r.rem += r.step
	r.ipos += r.rem / r.den
	r.rem %= r.den

	// Drop history the filter window can no longer reach. Frame 0 is kept
	// while the window still extends before the stream start.
	low := r.ipos - r.half + 1
	if drop := low - r.histStart; drop > resamplerChunkFrames {
		n := copy(r.hist, r.hist[drop*r.channels:])
		r.hist = r.hist[:n]
		r.histStart += drop
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// blackman is the Blackman window over t in [-1,1].
func blackman(t float64) float64 {
	if t <= -1 || t >= 1 {
		return 0
	}
	return 0.42 + 0.5*math.Cos(math.Pi*t) + 0.08*math.Cos(2*math.Pi*t)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
