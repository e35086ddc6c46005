// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/formats/wav"
)

// Example_roundTrip writes a stereo clip and decodes it again.
func Example_roundTrip() {
	samples := []int16{0, 0, 16384, -16384, 32767, -32768}

	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, 8000, 2, samples); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(&buf)
	if err != nil {
		fmt.Println(err)
		return
	}

	decoded := audio.ReadAll(src, 64)
	fmt.Printf("%d channels at %d Hz, %d frames\n", src.Channels(), src.SampleRate(), len(decoded)/src.Channels())
	fmt.Printf("second frame: %.2f %.2f\n", decoded[2], decoded[3])
	// Output:
	// 2 channels at 8000 Hz, 3 frames
	// second frame: 0.50 -0.50
}

// Example_errorNotWAV shows the error returned for non-WAV input.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(strings.NewReader("definitely not a RIFF file"))
	fmt.Println(errors.Is(err, wav.ErrNotWavFile))
	// Output:
	// true
}

// Example_registry registers the decoder under its file extension.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})

	_, ok := registry.Get("wav")
	fmt.Println(ok)
	// Output:
	// true
}
