// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/formats/vorbis"
)

// ExampleDecoder_Decode decodes an Ogg Vorbis file and resamples it to
// 48kHz.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := vorbis.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	resampled, err := audio.NewResampler(src, audio.Rate48000)
	if err != nil {
		log.Fatal(err)
	}

	samples := audio.ReadAll(resampled, 4096)
	fmt.Printf("%d samples, %d channels\n", len(samples), resampled.Channels())
}
