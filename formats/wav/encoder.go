// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/utils"
)

// Encode drains src into w as a 16-bit PCM WAV. The header sizes are
// patched in when the stream ends, which is why w must be seekable.
// It returns the number of frames written.
func Encode(w io.WriteSeeker, src audio.Source) (int, error) {
	channels := src.Channels()
	enc := wav.NewEncoder(w, src.SampleRate(), 16, channels, wavFormatPCM)

	in := make([]audio.Sample, chunkSize/channels*channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		Data:           make([]int, len(in)),
		SourceBitDepth: 16,
	}

	total := 0
	for {
		n := src.WriteSamples(in)
		// A trailing partial frame cannot be represented and is dropped.
		n -= n % channels
		for i, v := range in[:n] {
			buf.Data[i] = int(utils.Float32ToInt16(v))
		}
		// An empty write still emits the header.
		buf.Data = buf.Data[:n]
		if err := enc.Write(buf); err != nil {
			return total, fmt.Errorf("encode wav: %w", err)
		}
		buf.Data = buf.Data[:cap(buf.Data)]
		total += n / channels
		if n < len(in) {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return total, fmt.Errorf("finish wav: %w", err)
	}
	return total, nil
}
