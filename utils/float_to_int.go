// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 hard clips x to [-1, 1] and scales it by 32767, dropping
// the fraction. The result is symmetric around zero, so -1 maps to -32767
// and math.MinInt16 is never produced. NaN maps to silence.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return -math.MaxInt16
	case math.IsNaN(float64(x)):
		return 0
	}
	return int16(x * math.MaxInt16)
}

// Int16ToFloat32 maps a 16-bit PCM value onto [-1, 1) by dividing by 32768,
// the scale decoders use for integer input.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// Float32sToInt16s converts min(len(dst), len(src)) samples and returns the
// number converted.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i, s := range src[:n] {
		dst[i] = Float32ToInt16(s)
	}
	return n
}
